package consistency

// validateSchemas is a placeholder for payload-vs-schema comparison. Checking
// a request body payload against the operation's schema requires resolving
// schema references out of the interface document, which this engine
// deliberately does not do; runtime expressions embedded in payloads cannot
// be checked statically either. The phase exists so the orchestration and the
// reserved error types are already in place when it is implemented.
func (v *Validator) validateSchemas() ([]Error, []Warning) {
	return nil, nil
}
