package esrename

// Scan returns the top-level statements of mod that reference another
// module: import declarations and exports with a from clause, in source
// order. Local exports such as "export { a }" are not included.
func Scan(mod *Module) []*Statement {
	if mod == nil {
		return nil
	}
	var out []*Statement
	for _, stmt := range mod.Body {
		if stmt.HasSource() {
			out = append(out, stmt)
		}
	}
	return out
}
