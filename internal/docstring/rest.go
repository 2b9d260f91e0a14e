package docstring

import "strings"

// Field keywords recognized in reST docstrings.
var (
	paramKeywords   = keywordSet("param", "parameter", "arg", "argument", "attribute", "key", "keyword")
	raisesKeywords  = keywordSet("raises", "raise", "except", "exception")
	returnsKeywords = keywordSet("return", "returns")
	yieldsKeywords  = keywordSet("yield", "yields")
)

func keywordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// ReST parses docstrings written with Sphinx-style field lists such as
// ":param x:", ":return:" and ":raises ValueError:".
type ReST struct{}

// Parse returns the structured docstring, or a *DialectError when a field
// is malformed. Empty text yields an empty Parsed. The free-text
// description before the first field is skipped, and fields with
// unrecognized keywords are accepted and dropped.
func (ReST) Parse(text string) (Parsed, error) {
	var ret Parsed
	if text == "" {
		return ret, nil
	}
	text = CleanDoc(text)

	types := map[string]string{}
	rtypes := map[string]string{}
	var rtypeOrder []string
	for _, chunk := range metaChunks(fieldSection(text)) {
		argsChunk, desc, ok := strings.Cut(strings.TrimLeft(chunk, ":"), ":")
		if !ok {
			return Parsed{}, &DialectError{Near: strings.TrimSpace(chunk), Reason: "field has no closing colon"}
		}
		args := strings.Fields(argsChunk)
		desc = cleanFieldDescription(desc)

		switch {
		case len(args) == 2 && args[0] == "type":
			types[args[1]] = desc
		case (len(args) == 1 || len(args) == 2) && args[0] == "rtype":
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			if _, seen := rtypes[name]; !seen {
				rtypeOrder = append(rtypeOrder, name)
			}
			rtypes[name] = desc
		default:
			if err := ret.addField(args, desc); err != nil {
				return Parsed{}, err
			}
		}
	}

	for i := range ret.Params {
		if ret.Params[i].Type == "" {
			ret.Params[i].Type = types[ret.Params[i].Name]
		}
	}
	if ret.Returns != nil && ret.Returns.Type == "" {
		ret.Returns.Type = rtypes[""]
	}
	if ret.Returns == nil && len(rtypeOrder) > 0 {
		ret.Returns = &Returns{Type: rtypes[rtypeOrder[0]]}
	}
	return ret, nil
}

// fieldSection returns text from the first line starting with a colon.
func fieldSection(text string) string {
	if strings.HasPrefix(text, ":") {
		return text
	}
	if i := strings.Index(text, "\n:"); i >= 0 {
		return text[i+1:]
	}
	return ""
}

// metaChunks splits the field section into one chunk per field. A chunk
// runs from a line starting with ":" up to the next such line.
func metaChunks(meta string) []string {
	if meta == "" {
		return nil
	}
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(meta, "\n") {
		if strings.HasPrefix(line, ":") && cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// cleanFieldDescription trims a field body and dedents its continuation
// lines.
func cleanFieldDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	first, rest, ok := strings.Cut(desc, "\n")
	if !ok {
		return desc
	}
	return first + "\n" + CleanDoc(rest)
}

func (p *Parsed) addField(args []string, desc string) error {
	if len(args) == 0 {
		return &DialectError{Reason: "field has no keyword"}
	}
	key := args[0]

	switch {
	case paramKeywords[key]:
		var prm Param
		switch len(args) {
		case 3:
			prm.Type, prm.Name = strings.TrimSuffix(args[1], "?"), args[2]
		case 2:
			prm.Name = args[1]
		default:
			return &DialectError{Near: strings.Join(args, " "), Reason: "expected one or two arguments for a " + key + " keyword"}
		}
		prm.Description = desc
		p.Params = append(p.Params, prm)

	case returnsKeywords[key], yieldsKeywords[key]:
		typ, err := optionalArg(args)
		if err != nil {
			return err
		}
		if p.Returns == nil {
			p.Returns = &Returns{Type: typ, Description: desc}
		}

	case raisesKeywords[key]:
		typ, err := optionalArg(args)
		if err != nil {
			return err
		}
		p.Raises = append(p.Raises, Raises{Type: typ, Description: desc})
	}
	return nil
}

func optionalArg(args []string) (string, error) {
	switch len(args) {
	case 1:
		return "", nil
	case 2:
		return args[1], nil
	}
	return "", &DialectError{Near: strings.Join(args, " "), Reason: "expected one or no arguments for a " + args[0] + " keyword"}
}
