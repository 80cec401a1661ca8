package values

// unknownType is the absorbing sentinel: spec.md §3.1 "no operation ever
// raises because of it — it is absorbing: Unknown.op(x) = Unknown unless
// the operation has a specified fallback." GetMember on Unknown always
// succeeds with UnknownMember so that chained member access (`x.y.z`)
// never needs a nil check at the call site.
type unknownType struct{}

func (unknownType) String() string                      { return "Unknown" }
func (unknownType) DeclaringModule() ModuleRef           { return nil }
func (unknownType) GetMember(string) (Member, bool)      { return UnknownMember, true }
func (unknownType) MemberNames() []string                { return nil }

// UnknownType is the process-wide Unknown sentinel (spec.md §3.1).
var UnknownType Type = unknownType{}

type unknownMember struct{}

func (unknownMember) MemberKind() MemberKind        { return KindUnknown }
func (unknownMember) DeclaringModule() ModuleRef    { return nil }
func (unknownMember) Type() Type                    { return UnknownType }

// UnknownMember is the bottom Member value every expression evaluation
// falls back to on failure (spec.md §7 "the evaluator always returns
// some Member; Unknown as the bottom").
var UnknownMember Member = unknownMember{}
