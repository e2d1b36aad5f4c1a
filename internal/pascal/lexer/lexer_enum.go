package lexer

// ----------
// Lexer Kind
// ----------

type Kind int

const (
	EOF Kind = iota
	Ident
	IntConst
	FloatConst
	CharConst
	StringConst

	// operators and punctuation
	Plus
	Minus
	Star
	Slash
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	Comma
	Semicolon
	Colon
	Assign
	Point
	TwoPoints
	Caret

	// keywords
	And
	Array
	Begin
	Case
	Const
	Div
	Do
	Downto
	Else
	End
	File
	For
	Function
	Goto
	If
	In
	Label
	Mod
	Nil
	Not
	Of
	Or
	Packed
	Procedure
	Program
	Record
	Repeat
	Set
	Then
	To
	Type
	Until
	Var
	While
	With

	kindCount
)

var kindNames = [...]string{
	EOF:          "end of input",
	Ident:        "identifier",
	IntConst:     "integer constant",
	FloatConst:   "real constant",
	CharConst:    "char constant",
	StringConst:  "string constant",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Equal:        "=",
	NotEqual:     "<>",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBracket:  "[",
	RightBracket: "]",
	Comma:        ",",
	Semicolon:    ";",
	Colon:        ":",
	Assign:       ":=",
	Point:        ".",
	TwoPoints:    "..",
	Caret:        "^",
	And:          "and",
	Array:        "array",
	Begin:        "begin",
	Case:         "case",
	Const:        "const",
	Div:          "div",
	Do:           "do",
	Downto:       "downto",
	Else:         "else",
	End:          "end",
	File:         "file",
	For:          "for",
	Function:     "function",
	Goto:         "goto",
	If:           "if",
	In:           "in",
	Label:        "label",
	Mod:          "mod",
	Nil:          "nil",
	Not:          "not",
	Of:           "of",
	Or:           "or",
	Packed:       "packed",
	Procedure:    "procedure",
	Program:      "program",
	Record:       "record",
	Repeat:       "repeat",
	Set:          "set",
	Then:         "then",
	To:           "to",
	Type:         "type",
	Until:        "until",
	Var:          "var",
	While:        "while",
	With:         "with",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(?)"
	}

	return kindNames[k]
}

// Count is the number of token kinds; every Kind is below it.
const Count = int(kindCount)

func (k Kind) IsKeyword() bool {
	return k >= And && k <= With
}
