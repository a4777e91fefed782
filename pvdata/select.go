package pvdata

// SelectFields prunes desc down to the fields named by request, the
// way a pvRequest Value restricts a server's full type down to what a
// client actually wants. request's own leaf values are ignored —
// only its Struct shape matters: a field present at some path in
// request keeps that path (and everything beneath it) in the result.
// An empty request (no fields at all) selects everything, the
// conventional "give me the whole type" pvRequest.
func SelectFields(desc *TypeDesc, request *Value) (*TypeDesc, error) {
	if request == nil || len(desc.Iter()) == 0 {
		return desc, nil
	}
	reqDesc := request.Type()
	if len(reqDesc.Iter()) == 0 {
		return desc, nil
	}
	m, err := selectMember(desc, request)
	if err != nil {
		return nil, err
	}
	var errs error
	root, _ := buildNode(m, &errs)
	if errs != nil {
		return nil, errs
	}
	return root, nil
}

func selectMember(desc *TypeDesc, request *Value) (Member, error) {
	if desc.Code() != Struct {
		return memberFromDesc(desc), nil
	}
	reqDesc := request.Type()
	if len(reqDesc.Iter()) == 0 {
		return memberFromDesc(desc), nil
	}
	var children []Member
	for _, rm := range reqDesc.Iter() {
		child, ok := desc.Lookup(rm.Name)
		if !ok {
			return Member{}, fieldErr(ErrNoField, rm.Name)
		}
		reqChild, err := request.Field(rm.Name)
		if err != nil {
			return Member{}, err
		}
		sub, err := selectMember(child, reqChild)
		if err != nil {
			return Member{}, err
		}
		sub.Name = rm.Name
		children = append(children, sub)
	}
	return Member{Code: Struct, ID: desc.ID(), Children: children}, nil
}

// memberFromDesc rebuilds a Member describing desc's own shape
// (non-Struct, or a Struct selected in full because the request named
// it but supplied no sub-request of its own).
func memberFromDesc(desc *TypeDesc) Member {
	switch desc.Code() {
	case Struct:
		children := make([]Member, 0, len(desc.Iter()))
		for _, m := range desc.Iter() {
			c := memberFromDesc(m.Desc)
			c.Name = m.Name
			children = append(children, c)
		}
		return Member{Code: Struct, ID: desc.ID(), Children: children}
	case Union:
		variants := make([]Member, len(desc.Members()))
		for i, mem := range desc.Members() {
			v := memberFromDesc(mem)
			v.Name = desc.MemberNames()[i]
			variants[i] = v
		}
		return Member{Code: Union, ID: desc.ID(), Children: variants}
	case StructA, UnionA:
		elem := desc.Members()[0]
		return Member{Code: desc.Code(), ID: desc.ID(), Children: memberFromDesc(elem).Children}
	default:
		return Member{Code: desc.Code()}
	}
}
