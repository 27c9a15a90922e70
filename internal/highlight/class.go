package highlight

// TokenClass is a member of the fixed syntax-category enumeration spans
// are tagged with. The zero value, ClassNone, fills gaps between spans so
// the union of a highlight result always covers [0, length).
type TokenClass uint8

// Token classes. The set is fixed at roughly 32 members per the spec;
// grammars map their node kinds onto this table rather than inventing
// per-language categories.
const (
	ClassNone TokenClass = iota
	ClassKeyword
	ClassKeywordControl
	ClassKeywordDeclaration
	ClassIdentifier
	ClassVariable
	ClassParameter
	ClassLiteral
	ClassString
	ClassStringEscape
	ClassNumber
	ClassBoolean
	ClassComment
	ClassCommentDoc
	ClassPunctuation
	ClassBracket
	ClassDelimiter
	ClassOperator
	ClassType
	ClassTypeBuiltin
	ClassNamespace
	ClassFunction
	ClassFunctionCall
	ClassMethod
	ClassConstant
	ClassProperty
	ClassAttribute
	ClassTag
	ClassLabel
	ClassMacro
	ClassRegexp
	ClassInvalid
	classCount
)

var classNames = [classCount]string{
	ClassNone:               "none",
	ClassKeyword:            "keyword",
	ClassKeywordControl:     "keyword.control",
	ClassKeywordDeclaration: "keyword.declaration",
	ClassIdentifier:         "identifier",
	ClassVariable:           "variable",
	ClassParameter:          "parameter",
	ClassLiteral:            "literal",
	ClassString:             "string",
	ClassStringEscape:       "string.escape",
	ClassNumber:             "number",
	ClassBoolean:            "boolean",
	ClassComment:            "comment",
	ClassCommentDoc:         "comment.doc",
	ClassPunctuation:        "punctuation",
	ClassBracket:            "punctuation.bracket",
	ClassDelimiter:          "punctuation.delimiter",
	ClassOperator:           "operator",
	ClassType:               "type",
	ClassTypeBuiltin:        "type.builtin",
	ClassNamespace:          "namespace",
	ClassFunction:           "function",
	ClassFunctionCall:       "function.call",
	ClassMethod:             "method",
	ClassConstant:           "constant",
	ClassProperty:           "property",
	ClassAttribute:          "attribute",
	ClassTag:                "tag",
	ClassLabel:              "label",
	ClassMacro:              "macro",
	ClassRegexp:             "regexp",
	ClassInvalid:            "invalid",
}

// String returns the class's TextMate-style scope name.
func (c TokenClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}
