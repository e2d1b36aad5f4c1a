package diag

import "strconv"

// Code identifies a diagnostic. The numbering follows the classic Pascal
// compiler error table so listings stay comparable with the textbook ones.
type Code int

const (
	ErrIdentExpected     Code = 2
	ErrProgramExpected   Code = 3
	ErrRightParExpected  Code = 4
	ErrColonExpected     Code = 5
	ErrIllegalSymbol     Code = 6
	ErrOfExpected        Code = 8
	ErrLeftParExpected   Code = 9
	ErrType              Code = 10
	ErrLBracketExpected  Code = 11
	ErrRBracketExpected  Code = 12
	ErrEndExpected       Code = 13
	ErrSemicolonExpected Code = 14
	ErrIntegerExpected   Code = 15
	ErrEqualExpected     Code = 16
	ErrBeginExpected     Code = 17
	ErrDeclarationPart   Code = 18
	ErrCommaExpected     Code = 20
	ErrStatement         Code = 22
	ErrExpression        Code = 23
	ErrConstant          Code = 50
	ErrAssignExpected    Code = 51
	ErrThenExpected      Code = 52
	ErrDoExpected        Code = 54
	ErrPointExpected     Code = 61
	ErrTwoPointsExpected Code = 74
	ErrCharLiteral       Code = 75
	ErrUnclosedComment   Code = 86
	ErrNameMisuse        Code = 100
	ErrDuplicateName     Code = 101
	ErrUndeclared        Code = 104
	ErrSubrange          Code = 112
	ErrNotArray          Code = 140
	ErrRelationTypes     Code = 186
	ErrRealLiteral       Code = 201
	ErrIntegerOverflow   Code = 203
	ErrRealOverflow      Code = 207
	ErrLogicalOperands   Code = 210
	ErrAdditiveOperands  Code = 211
	ErrDivModOperands    Code = 212
	ErrMulOperands       Code = 213
	ErrSlashOperands     Code = 214
	ErrOutOfRange        Code = 306
	ErrTypeMismatch      Code = 328

	// ErrUnexpected is reported when a construct is followed by a token
	// that cannot follow it.
	ErrUnexpected = ErrIllegalSymbol
)

var descriptions = map[Code]string{
	ErrIdentExpected:     "должно идти имя",
	ErrProgramExpected:   "должно быть служебное слово PROGRAM",
	ErrRightParExpected:  "должен идти символ ')'",
	ErrColonExpected:     "должен идти символ ':'",
	ErrIllegalSymbol:     "запрещенный символ",
	ErrOfExpected:        "должно идти слово OF",
	ErrLeftParExpected:   "должен идти символ '('",
	ErrType:              "ошибка в типе",
	ErrLBracketExpected:  "должен идти символ '['",
	ErrRBracketExpected:  "должен идти символ ']'",
	ErrEndExpected:       "должно идти слово END",
	ErrSemicolonExpected: "должен идти символ ';'",
	ErrIntegerExpected:   "должно идти целое",
	ErrEqualExpected:     "должен идти символ '='",
	ErrBeginExpected:     "должно идти слово BEGIN",
	ErrDeclarationPart:   "ошибка в разделе описаний",
	ErrCommaExpected:     "должен идти символ ','",
	ErrStatement:         "ошибка в конструкции",
	ErrExpression:        "ошибка в выражении",
	ErrConstant:          "ошибка в константе",
	ErrAssignExpected:    "должен идти символ ':='",
	ErrThenExpected:      "должно идти слово THEN",
	ErrDoExpected:        "должно идти слово DO",
	ErrPointExpected:     "должен идти символ '.'",
	ErrTwoPointsExpected: "должен идти символ '..'",
	ErrCharLiteral:       "ошибка в символьной константе",
	ErrUnclosedComment:   "комментарий не закрыт",
	ErrNameMisuse:        "использование имени не соответствует описанию",
	ErrDuplicateName:     "имя описано повторно",
	ErrUndeclared:        "имя не описано",
	ErrSubrange:          "недопустимый ограниченный тип",
	ErrNotArray:          "тип переменной не является массивом",
	ErrRelationTypes:     "несоответствие типов для операции отношения",
	ErrRealLiteral:       "ошибка в вещественной константе: должна идти цифра",
	ErrIntegerOverflow:   "целая константа превышает предел",
	ErrRealOverflow:      "слишком большая вещественная константа",
	ErrLogicalOperands:   "операнды AND, NOT, OR должны быть булевыми",
	ErrAdditiveOperands:  "недопустимые типы операндов операции + или -",
	ErrDivModOperands:    "операнды DIV и MOD должны быть целыми",
	ErrMulOperands:       "недопустимые типы операндов операции *",
	ErrSlashOperands:     "недопустимые типы операндов операции /",
	ErrOutOfRange:        "значение выходит за границы ограниченного типа",
	ErrTypeMismatch:      "несоответствие типов",
}

// Description returns the fixed message printed under a diagnostic of this code.
func (c Code) Description() string {
	if text, ok := descriptions[c]; ok {
		return text
	}

	return "неизвестная ошибка"
}

// Known reports whether the code has a registered description.
func (c Code) Known() bool {
	_, ok := descriptions[c]
	return ok
}

func (c Code) String() string {
	return strconv.Itoa(int(c))
}

// Codes returns every registered code; the order is unspecified.
func Codes() []Code {
	codes := make([]Code, 0, len(descriptions))
	for code := range descriptions {
		codes = append(codes, code)
	}

	return codes
}
