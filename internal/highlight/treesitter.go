package highlight

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

// Grammar pairs a tree-sitter language with the node-type -> TokenClass
// table that lowers its parse tree into spans.
type Grammar struct {
	Language *sitter.Language
	NodeType map[string]TokenClass
}

// grammars holds every registered tree-sitter backend, keyed by the
// language tag a Manifest or buffer file-type detector would pass to
// SetLanguage. The corpus's own file-type detection lives outside this
// core per spec.md §1; only the tag string crosses the boundary.
var grammars = map[string]Grammar{
	"go":         {Language: golang.GetLanguage(), NodeType: goNodeTypes},
	"javascript": {Language: javascript.GetLanguage(), NodeType: jsNodeTypes},
	"python":     {Language: python.GetLanguage(), NodeType: pyNodeTypes},
}

var goNodeTypes = map[string]TokenClass{
	"comment":              ClassComment,
	"interpreted_string_literal": ClassString,
	"raw_string_literal":   ClassString,
	"rune_literal":         ClassString,
	"escape_sequence":      ClassStringEscape,
	"int_literal":          ClassNumber,
	"float_literal":        ClassNumber,
	"imaginary_literal":    ClassNumber,
	"true":                 ClassBoolean,
	"false":                ClassBoolean,
	"nil":                  ClassConstant,
	"package":              ClassKeyword,
	"import":               ClassKeyword,
	"func":                 ClassKeywordDeclaration,
	"var":                  ClassKeywordDeclaration,
	"const":                ClassKeywordDeclaration,
	"type":                 ClassKeywordDeclaration,
	"struct":               ClassKeyword,
	"interface":            ClassKeyword,
	"map":                  ClassKeyword,
	"chan":                 ClassKeyword,
	"go":                   ClassKeywordControl,
	"defer":                ClassKeywordControl,
	"return":               ClassKeywordControl,
	"if":                   ClassKeywordControl,
	"else":                 ClassKeywordControl,
	"for":                  ClassKeywordControl,
	"range":                ClassKeywordControl,
	"switch":               ClassKeywordControl,
	"case":                 ClassKeywordControl,
	"default":              ClassKeywordControl,
	"break":                ClassKeywordControl,
	"continue":             ClassKeywordControl,
	"goto":                 ClassKeywordControl,
	"select":               ClassKeywordControl,
	"identifier":           ClassIdentifier,
	"field_identifier":     ClassProperty,
	"type_identifier":      ClassType,
	"package_identifier":   ClassNamespace,
	"(":                    ClassBracket,
	")":                    ClassBracket,
	"{":                    ClassBracket,
	"}":                    ClassBracket,
	"[":                    ClassBracket,
	"]":                    ClassBracket,
	",":                    ClassDelimiter,
	";":                    ClassDelimiter,
	".":                    ClassDelimiter,
	":":                    ClassDelimiter,
	"+":                    ClassOperator,
	"-":                    ClassOperator,
	"*":                    ClassOperator,
	"/":                    ClassOperator,
	"%":                    ClassOperator,
	"=":                    ClassOperator,
	":=":                   ClassOperator,
	"==":                   ClassOperator,
	"!=":                   ClassOperator,
	"<":                    ClassOperator,
	">":                    ClassOperator,
	"<=":                   ClassOperator,
	">=":                   ClassOperator,
	"&&":                   ClassOperator,
	"||":                   ClassOperator,
	"!":                    ClassOperator,
	"ERROR":                ClassInvalid,
}

var jsNodeTypes = map[string]TokenClass{
	"comment":            ClassComment,
	"string":             ClassString,
	"template_string":    ClassString,
	"escape_sequence":    ClassStringEscape,
	"number":             ClassNumber,
	"true":               ClassBoolean,
	"false":              ClassBoolean,
	"null":               ClassConstant,
	"undefined":          ClassConstant,
	"function":           ClassKeywordDeclaration,
	"class":              ClassKeywordDeclaration,
	"const":              ClassKeywordDeclaration,
	"let":                ClassKeywordDeclaration,
	"var":                ClassKeywordDeclaration,
	"import":             ClassKeyword,
	"export":             ClassKeyword,
	"from":               ClassKeyword,
	"return":             ClassKeywordControl,
	"if":                 ClassKeywordControl,
	"else":               ClassKeywordControl,
	"for":                ClassKeywordControl,
	"while":              ClassKeywordControl,
	"switch":             ClassKeywordControl,
	"case":               ClassKeywordControl,
	"break":              ClassKeywordControl,
	"continue":           ClassKeywordControl,
	"throw":              ClassKeywordControl,
	"try":                ClassKeywordControl,
	"catch":              ClassKeywordControl,
	"identifier":         ClassIdentifier,
	"property_identifier": ClassProperty,
	"(":                  ClassBracket,
	")":                  ClassBracket,
	"{":                  ClassBracket,
	"}":                  ClassBracket,
	"[":                  ClassBracket,
	"]":                  ClassBracket,
	",":                  ClassDelimiter,
	";":                  ClassDelimiter,
	".":                  ClassDelimiter,
	"=":                  ClassOperator,
	"ERROR":              ClassInvalid,
}

var pyNodeTypes = map[string]TokenClass{
	"comment":            ClassComment,
	"string":             ClassString,
	"escape_sequence":    ClassStringEscape,
	"integer":            ClassNumber,
	"float":              ClassNumber,
	"true":               ClassBoolean,
	"false":              ClassBoolean,
	"none":               ClassConstant,
	"def":                ClassKeywordDeclaration,
	"class":              ClassKeywordDeclaration,
	"import":             ClassKeyword,
	"from":               ClassKeyword,
	"as":                 ClassKeyword,
	"return":             ClassKeywordControl,
	"if":                 ClassKeywordControl,
	"elif":               ClassKeywordControl,
	"else":               ClassKeywordControl,
	"for":                ClassKeywordControl,
	"while":              ClassKeywordControl,
	"try":                ClassKeywordControl,
	"except":             ClassKeywordControl,
	"finally":            ClassKeywordControl,
	"raise":              ClassKeywordControl,
	"with":               ClassKeywordControl,
	"identifier":         ClassIdentifier,
	"(":                  ClassBracket,
	")":                  ClassBracket,
	"{":                  ClassBracket,
	"}":                  ClassBracket,
	"[":                  ClassBracket,
	"]":                  ClassBracket,
	",":                  ClassDelimiter,
	":":                  ClassDelimiter,
	".":                  ClassDelimiter,
	"=":                  ClassOperator,
	"ERROR":              ClassInvalid,
}

// treeSitterParse runs g's parser over content, reusing oldTree for
// incremental re-parsing when non-nil (tree-sitter's own edit-tracking
// handles the before/dirty/after partition internally when oldTree has
// had sitter.Tree.Edit applied to it beforehand), and lowers the result
// into a flat, sorted Span list via nodeTypeSpans.
func treeSitterParse(ctx context.Context, g Grammar, content []byte, oldTree *sitter.Tree) (*sitter.Tree, []Span, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(g.Language)

	tree, err := parser.ParseCtx(ctx, oldTree, content)
	if err != nil {
		return nil, nil, ErrParserInternal
	}

	var spans []Span
	walk(tree.RootNode(), g.NodeType, &spans)
	return tree, spans, nil
}

// walk recursively visits leaf nodes, named or anonymous (keywords and
// punctuation are anonymous), emitting a span for each leaf whose type
// resolves in table. A node with children is never emitted itself, even
// when its type has a table entry; its children are visited so their
// own literal/keyword tokens surface.
func walk(node *sitter.Node, table map[string]TokenClass, out *[]Span) {
	if node == nil {
		return
	}
	childCount := int(node.ChildCount())
	if class, ok := table[node.Type()]; ok && childCount == 0 {
		*out = append(*out, Span{
			StartByte: node.StartByte(),
			EndByte:   node.EndByte(),
			Class:     class,
		})
		return
	}
	if childCount == 0 {
		return
	}
	for i := 0; i < childCount; i++ {
		walk(node.Child(i), table, out)
	}
}
