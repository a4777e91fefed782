package pvdata

// Normative-type convenience constructors. pvxs defines these as
// separate helper headers layered on top of TypeDef; here they are
// just pre-built Members, since every normative type is, underneath,
// an ordinary Struct with conventional alarm/timeStamp substructures.

func alarmMember() Member {
	return MStruct("alarm", "alarm_t",
		MInt32("severity"),
		MInt32("status"),
		MString("message"),
	)
}

func timeStampMember() Member {
	return MStruct("timeStamp", "time_t",
		MInt64("secondsPastEpoch"),
		MInt32("nanoseconds"),
		MInt32("userTag"),
	)
}

// NTScalar builds the TypeDef for a normative NTScalar<code>: a
// single named "value" field of the given scalar code plus the
// conventional alarm and timeStamp substructures.
func NTScalar(code TypeCode) *TypeDef {
	return NewTypeDef(Struct, "epics:nt/NTScalar:1.0",
		M(code, "value"),
		alarmMember(),
		timeStampMember(),
	)
}

// NTScalarArray builds the TypeDef for a normative NTScalarArray
// wrapping an array of the given scalar array code.
func NTScalarArray(code TypeCode) *TypeDef {
	return NewTypeDef(Struct, "epics:nt/NTScalarArray:1.0",
		M(code, "value"),
		alarmMember(),
		timeStampMember(),
	)
}

// NTEnum builds the TypeDef for a normative NTEnum: a choice string
// array plus the selected index, wrapped the conventional way.
func NTEnum() *TypeDef {
	return NewTypeDef(Struct, "epics:nt/NTEnum:1.0",
		MStruct("value", "enum_t",
			MInt32("index"),
			MStringA("choices"),
		),
		alarmMember(),
		timeStampMember(),
	)
}
