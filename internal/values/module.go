package values

// ModuleType is the Type of a Module entity (spec.md §3.1, §3.2). Its
// member table is not stored here — it lives in the module's
// GlobalScope (internal/scope), reached through the MemberProvider
// indirection documented on that interface.
type ModuleType struct {
	Name          string
	QualifiedName string
	Module        ModuleRef
	Scope         MemberProvider // set once the module's GlobalScope exists
}

func (t *ModuleType) String() string { return t.Name }

func (t *ModuleType) DeclaringModule() ModuleRef { return t.Module }

func (t *ModuleType) GetMember(name string) (Member, bool) {
	if t.Scope == nil {
		return nil, false
	}
	return t.Scope.GetMember(name)
}

func (t *ModuleType) MemberNames() []string {
	if t.Scope == nil {
		return nil
	}
	return t.Scope.MemberNames()
}

// ModuleMember wraps a ModuleType so it satisfies Member directly
// (spec.md §3.1 MemberKind "Module").
type ModuleMember struct {
	*ModuleType
}

func (m *ModuleMember) MemberKind() MemberKind { return KindModule }
func (m *ModuleMember) Type() Type             { return m.ModuleType }
