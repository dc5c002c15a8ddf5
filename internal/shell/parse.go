package shell

// Tokenize splits a command line into an argument vector. Arguments are
// separated by unquoted whitespace; a span enclosed in single quotes forms a
// single argument and may contain whitespace. An unterminated quote takes
// the rest of the line.
//
// A trailing & requests background execution; it is stripped from the
// returned vector.
func Tokenize(line string) (argv []string, background bool) {
	i := 0
	for i < len(line) {
		switch {
		case isSpace(line[i]):
			i++

		case line[i] == '\'':
			j := i + 1
			for j < len(line) && line[j] != '\'' {
				j++
			}

			argv = append(argv, line[i+1:j])

			if j < len(line) {
				j++
			}
			i = j

		default:
			// A quote only delimits at the start of a token; embedded
			// quotes are ordinary characters.
			j := i
			for j < len(line) && !isSpace(line[j]) {
				j++
			}

			argv = append(argv, line[i:j])
			i = j
		}
	}

	if n := len(argv); n > 0 && argv[n-1] == "&" {
		return argv[:n-1], true
	}

	return argv, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
