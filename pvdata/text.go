package pvdata

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a human-readable, indented rendering of v to w: one
// line per leaf, composite nodes as a braced block, matching the
// style of pvxs's Value operator<<. This is for logs and debugging,
// not a format that can be parsed back.
func (v *Value) Dump(w io.Writer) error {
	return dumpValue(w, v, 0)
}

// Text renders Dump's output as a string.
func (v *Value) Text() string {
	var sb strings.Builder
	_ = v.Dump(&sb)
	return sb.String()
}

func dumpValue(w io.Writer, v *Value, depth int) error {
	ind := strings.Repeat("    ", depth)
	d := v.desc()
	switch d.Code() {
	case Struct:
		if _, err := fmt.Fprintf(w, "%sstruct %q {\n", ind, d.ID()); err != nil {
			return err
		}
		for _, m := range d.Iter() {
			child := v.sub(m.Desc.index)
			if child.desc().Code() == Struct {
				if _, err := fmt.Fprintf(w, "%s    %s =\n", ind, m.Name); err != nil {
					return err
				}
				if err := dumpValue(w, child, depth+2); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s    %s = %s\n", ind, m.Name, leafText(child)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s}\n", ind)
		return err
	case Union:
		tag := v.SelectedTag()
		if tag == "" {
			_, err := fmt.Fprintf(w, "%sunion %q (unselected)\n", ind, d.ID())
			return err
		}
		if _, err := fmt.Fprintf(w, "%sunion %q : %s =\n", ind, d.ID(), tag); err != nil {
			return err
		}
		return dumpValue(w, v.cell().sub, depth+1)
	case Any:
		sub := v.AnyValue()
		if sub == nil {
			_, err := fmt.Fprintf(w, "%sany (empty)\n", ind)
			return err
		}
		if _, err := fmt.Fprintf(w, "%sany =\n", ind); err != nil {
			return err
		}
		return dumpValue(w, sub, depth+1)
	case StructA, UnionA:
		n := v.ArrayLen()
		if _, err := fmt.Fprintf(w, "%s%s[%d] {\n", ind, d.Code(), n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			elem, _ := v.Index(i)
			if _, err := fmt.Fprintf(w, "%s    [%d] =\n", ind, i); err != nil {
				return err
			}
			if err := dumpValue(w, elem, depth+2); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s}\n", ind)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s%s\n", ind, leafText(v))
		return err
	}
}

func leafText(v *Value) string {
	if !v.IsValid() {
		return "<unset>"
	}
	val, err := v.CopyOut()
	if err != nil {
		return "<unset>"
	}
	switch x := val.(type) {
	case *SharedArray:
		return arrayText(x)
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func arrayText(a *SharedArray) string {
	n := a.Len()
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		switch {
		case a.bools != nil:
			parts[i] = strconv.FormatBool(a.bools[i])
		case a.ints != nil:
			parts[i] = strconv.FormatInt(a.ints[i], 10)
		case a.uints != nil:
			parts[i] = strconv.FormatUint(a.uints[i], 10)
		case a.reals != nil:
			parts[i] = strconv.FormatFloat(a.reals[i], 'g', -1, 64)
		case a.strs != nil:
			parts[i] = strconv.Quote(a.strs[i])
		case a.compounds != nil:
			if a.compounds[i] == nil {
				parts[i] = "<empty>"
			} else {
				parts[i] = a.compounds[i].Text()
			}
		default:
			parts[i] = "?"
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
