package expression

// ExtractExpressions extracts every embedded runtime expression from a string
// that may mix literal text and expressions, such as the JSON encoding of a
// request body payload. The whole string is never assumed to be a single
// expression: an expression starts at a `$` and runs for as long as the
// characters are valid expression characters.
func ExtractExpressions(s string) []Expression {
	expressions := []Expression{}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '$' {
			continue
		}

		end := i + 1
		for end < len(runes) && isNameRune(runes[end]) {
			end++
		}

		// Trailing dots belong to the surrounding prose, not the expression.
		for end > i+1 && runes[end-1] == '.' {
			end--
		}

		// A lone "$" with no name characters after it is literal text.
		if end > i+1 {
			expressions = append(expressions, Expression(runes[i:end]))
		}

		i = end - 1
	}

	return expressions
}

// ExtractReferences extracts and classifies every embedded runtime expression.
// Literal-only strings yield an empty slice.
func ExtractReferences(s string) []Reference {
	expressions := ExtractExpressions(s)

	refs := make([]Reference, 0, len(expressions))
	for _, e := range expressions {
		refs = append(refs, e.Classify())
	}

	return refs
}
