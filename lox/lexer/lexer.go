package lexer

import (
	"fmt"
	"strconv"

	"github.com/smarthome-go/lox/lox/errors"
)

//
// Lexer
//

type Lexer struct {
	currentIndex int
	currentChar  *rune
	nextChar     *rune
	program      []rune
	location     errors.Location
	filename     string
}

func NewLexer(programSource string, filename string) Lexer {
	program := []rune(programSource)

	lexer := Lexer{
		currentIndex: 0,
		program:      program,
		location:     errors.NewLocation(),
		filename:     filename,
	}

	if len(program) > 0 {
		lexer.currentChar = &program[0]
	}
	if len(program) > 1 {
		lexer.nextChar = &program[1]
	}

	return lexer
}

// Scans the entire program, collecting every token and every error
// The returned token list always ends with an EOF token
func (self *Lexer) Scan() ([]Token, []errors.Error) {
	tokens := make([]Token, 0)
	errs := make([]errors.Error, 0)

	for {
		token, err := self.NextToken()
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		tokens = append(tokens, token)
		if token.Kind == EOF {
			return tokens, errs
		}
	}
}

func (self *Lexer) advance() {
	self.location.Advance(self.currentChar != nil && *self.currentChar == '\n')

	self.currentIndex++
	programLen := len(self.program)

	if self.currentIndex >= programLen {
		self.currentChar = nil
	} else {
		self.currentChar = &self.program[self.currentIndex]
	}

	if self.currentIndex+1 >= programLen {
		self.nextChar = nil
	} else {
		self.nextChar = &self.program[self.currentIndex+1]
	}
}

func (self *Lexer) span(start errors.Location, end errors.Location) errors.Span {
	return errors.Span{
		Start:    start,
		End:      end,
		Filename: self.filename,
	}
}

func (self *Lexer) skipLineComment() {
	for self.currentChar != nil && *self.currentChar != '\n' {
		self.advance()
	}
}

// Block comments may be nested
func (self *Lexer) skipBlockComment() *errors.Error {
	startLocation := self.location
	self.advance()
	self.advance()

	depth := 1
	for self.currentChar != nil {
		if *self.currentChar == '/' && self.nextChar != nil && *self.nextChar == '*' {
			self.advance()
			self.advance()
			depth++
			continue
		}
		if *self.currentChar == '*' && self.nextChar != nil && *self.nextChar == '/' {
			self.advance()
			self.advance()
			depth--
			if depth == 0 {
				return nil
			}
			continue
		}
		self.advance()
	}

	return errors.NewError(
		self.span(startLocation, self.location),
		"Unterminated block comment",
		errors.SyntaxError,
	)
}

func (self *Lexer) NextToken() (Token, *errors.Error) {
outer:
	for self.currentChar != nil {
		switch *self.currentChar {
		case ' ', '\n', '\t', '\r':
			self.advance()
		case '(':
			return self.makeSingleChar(LParen), nil
		case ')':
			return self.makeSingleChar(RParen), nil
		case '{':
			return self.makeSingleChar(LCurly), nil
		case '}':
			return self.makeSingleChar(RCurly), nil
		case '[':
			return self.makeSingleChar(LBracket), nil
		case ']':
			return self.makeSingleChar(RBracket), nil
		case ',':
			return self.makeSingleChar(Comma), nil
		case '.':
			return self.makeSingleChar(Dot), nil
		case '?':
			return self.makeSingleChar(Question), nil
		case ':':
			return self.makeSingleChar(Colon), nil
		case ';':
			return self.makeSingleChar(Semicolon), nil
		case '-':
			return self.makeOperator(Minus, map[rune]TokenKind{'=': MinusAssign, '-': MinusMinus}), nil
		case '+':
			return self.makeOperator(Plus, map[rune]TokenKind{'=': PlusAssign, '+': PlusPlus}), nil
		case '*':
			return self.makeOperator(Multiply, map[rune]TokenKind{'=': MultiplyAssign}), nil
		case '%':
			return self.makeOperator(Modulo, map[rune]TokenKind{'=': ModuloAssign}), nil
		case '!':
			return self.makeOperator(Not, map[rune]TokenKind{'=': NotEqual}), nil
		case '=':
			return self.makeOperator(Assign, map[rune]TokenKind{'=': Equal}), nil
		case '<':
			return self.makeOperator(Less, map[rune]TokenKind{'=': LessEqual}), nil
		case '>':
			return self.makeOperator(Greater, map[rune]TokenKind{'=': GreaterEqual}), nil
		case '/':
			if self.nextChar != nil {
				switch *self.nextChar {
				case '/':
					self.skipLineComment()
					continue outer
				case '*':
					if err := self.skipBlockComment(); err != nil {
						return UnknownToken(self.location), err
					}
					continue outer
				}
			}
			return self.makeOperator(Divide, map[rune]TokenKind{'=': DivideAssign}), nil
		case '"':
			return self.makeString()
		default:
			if isDigit(*self.currentChar) {
				return self.makeNumber()
			}
			if isAlpha(*self.currentChar) {
				return self.makeName(), nil
			}
			location := self.location
			char := *self.currentChar
			self.advance()
			return UnknownToken(location), errors.NewError(
				self.span(location, location),
				fmt.Sprintf("Unrecognized character '%c'", char),
				errors.SyntaxError,
			)
		}
	}

	return newToken(EOF, "EOF", self.span(self.location, self.location)), nil
}

func (self *Lexer) makeSingleChar(kind TokenKind) Token {
	token := newToken(
		kind,
		string(*self.currentChar),
		self.span(self.location, self.location),
	)
	self.advance()
	return token
}

// Lexes a one-character operator which may be extended by one of the runes in `followers`
func (self *Lexer) makeOperator(single TokenKind, followers map[rune]TokenKind) Token {
	startLocation := self.location
	value := string(*self.currentChar)

	if self.nextChar != nil {
		if kind, found := followers[*self.nextChar]; found {
			self.advance()
			value += string(*self.currentChar)
			token := newToken(kind, value, self.span(startLocation, self.location))
			self.advance()
			return token
		}
	}

	self.advance()
	return newToken(single, value, self.span(startLocation, startLocation))
}

func (self *Lexer) makeString() (Token, *errors.Error) {
	startLocation := self.location
	valueBuf := make([]rune, 0)

	// skip opening quote
	self.advance()

	for self.currentChar != nil && *self.currentChar != '"' {
		if *self.currentChar == '\\' {
			self.advance()
			if self.currentChar == nil {
				break
			}
			valueBuf = append(valueBuf, unescape(*self.currentChar))
			self.advance()
			continue
		}
		valueBuf = append(valueBuf, *self.currentChar)
		self.advance()
	}

	if self.currentChar == nil {
		return UnknownToken(startLocation), errors.NewError(
			self.span(startLocation, self.location),
			"Unterminated string",
			errors.SyntaxError,
		)
	}

	token := newToken(String, string(valueBuf), self.span(startLocation, self.location))

	// skip closing quote
	self.advance()
	return token, nil
}

func unescape(char rune) rune {
	switch char {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '0':
		return 0
	default:
		return char
	}
}

func (self *Lexer) makeNumber() (Token, *errors.Error) {
	startLocation := self.location
	lastEnd := startLocation
	value := ""
	kind := Integer

	consumeDigits := func() {
		for self.currentChar != nil && isDigit(*self.currentChar) {
			value += string(*self.currentChar)
			lastEnd = self.location
			self.advance()
		}
	}

	consumeDigits()

	if self.currentChar != nil && *self.currentChar == '.' && self.nextChar != nil && isDigit(*self.nextChar) {
		kind = Float
		value += "."
		self.advance()
		consumeDigits()
	}

	if self.currentChar != nil && (*self.currentChar == 'e' || *self.currentChar == 'E') {
		kind = Float
		value += string(*self.currentChar)
		lastEnd = self.location
		self.advance()
		if self.currentChar != nil && (*self.currentChar == '+' || *self.currentChar == '-') {
			value += string(*self.currentChar)
			lastEnd = self.location
			self.advance()
		}
		consumeDigits()
	}

	span := self.span(startLocation, lastEnd)

	var err error
	if kind == Float {
		_, err = strconv.ParseFloat(value, 64)
	} else {
		_, err = strconv.ParseInt(value, 10, 64)
	}
	if err != nil {
		return UnknownToken(startLocation), errors.NewError(
			span,
			fmt.Sprintf("Invalid number literal '%s'", value),
			errors.SyntaxError,
		)
	}

	return newToken(kind, value, span), nil
}

func (self *Lexer) makeName() Token {
	startLocation := self.location
	lastEnd := startLocation
	value := ""

	for self.currentChar != nil && isAlphanumeric(*self.currentChar) {
		value += string(*self.currentChar)
		lastEnd = self.location
		self.advance()
	}

	kind, isKeyword := keywords[value]
	if !isKeyword {
		kind = Identifier
	}

	return newToken(kind, value, self.span(startLocation, lastEnd))
}

func isAlpha(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == '_'
}

func isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

func isAlphanumeric(char rune) bool {
	return isAlpha(char) || isDigit(char)
}
