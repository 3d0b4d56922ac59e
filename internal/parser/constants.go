package parser

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/token"
)

// parseConstType parses the type between `con` and the value: a bare kind
// name, `(list t)` or `(pair a b)`. Returns with curToken on the type's
// last token.
func (p *Parser) parseConstType() (constant.Type, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return constant.Type{}, p.errorf("nesting exceeds %d levels", maxNesting)
	}

	switch {
	case p.curTokenIs(token.IDENT):
		switch p.curToken.Literal {
		case "integer":
			return constant.TInteger, nil
		case "bytestring":
			return constant.TByteString, nil
		case "string":
			return constant.TString, nil
		case "unit":
			return constant.TUnit, nil
		case "bool":
			return constant.TBool, nil
		case "data":
			return constant.TData, nil
		case "bls12_381_G1_element":
			return constant.TG1Element, nil
		case "bls12_381_G2_element":
			return constant.TG2Element, nil
		case "bls12_381_mlresult":
			return constant.Type{}, p.errorf("bls12_381_mlresult has no literal syntax")
		default:
			return constant.Type{}, p.errorf("unknown constant type %q", p.curToken.Literal)
		}

	case p.curTokenIs(token.LPAREN):
		p.nextToken() // consume '('
		if !p.curTokenIs(token.IDENT) {
			return constant.Type{}, p.errorf("expected list or pair, found %s", describe(p.curToken))
		}
		switch p.curToken.Literal {
		case "list":
			p.nextToken()
			elem, err := p.parseConstType()
			if err != nil {
				return constant.Type{}, err
			}
			if err := p.expectPeek(token.RPAREN); err != nil {
				return constant.Type{}, err
			}
			return constant.TList(elem), nil
		case "pair":
			p.nextToken()
			first, err := p.parseConstType()
			if err != nil {
				return constant.Type{}, err
			}
			p.nextToken()
			second, err := p.parseConstType()
			if err != nil {
				return constant.Type{}, err
			}
			if err := p.expectPeek(token.RPAREN); err != nil {
				return constant.Type{}, err
			}
			return constant.TPair(first, second), nil
		default:
			return constant.Type{}, p.errorf("expected list or pair, found %q", p.curToken.Literal)
		}

	default:
		return constant.Type{}, p.errorf("expected a constant type, found %s", describe(p.curToken))
	}
}

// parseConstValue parses a literal of the given type. Returns with
// curToken on the value's last token.
func (p *Parser) parseConstValue(typ constant.Type) (constant.Constant, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.errorf("nesting exceeds %d levels", maxNesting)
	}

	switch typ.Kind {
	case constant.KindInteger:
		if !p.curTokenIs(token.INT) {
			return nil, p.errorf("expected an integer literal, found %s", describe(p.curToken))
		}
		n, err := p.bigIntLiteral()
		if err != nil {
			return nil, err
		}
		return &constant.Integer{Value: n}, nil

	case constant.KindByteString:
		if !p.curTokenIs(token.BYTES) {
			return nil, p.errorf("expected a #-prefixed bytestring literal, found %s", describe(p.curToken))
		}
		raw, err := p.bytesLiteral()
		if err != nil {
			return nil, err
		}
		return constant.Bytes(raw), nil

	case constant.KindString:
		if !p.curTokenIs(token.STRING) {
			return nil, p.errorf("expected a string literal, found %s", describe(p.curToken))
		}
		return constant.Str(p.curToken.Literal), nil

	case constant.KindUnit:
		if !p.curTokenIs(token.LPAREN) {
			return nil, p.errorf("expected (), found %s", describe(p.curToken))
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return constant.UnitVal, nil

	case constant.KindBool:
		if p.curTokenIs(token.IDENT) {
			switch p.curToken.Literal {
			case "True":
				return constant.True, nil
			case "False":
				return constant.False, nil
			}
		}
		return nil, p.errorf("expected True or False, found %s", describe(p.curToken))

	case constant.KindData:
		d, err := p.parseDataValue()
		if err != nil {
			return nil, err
		}
		return &constant.DataConstant{Value: d}, nil

	case constant.KindList:
		return p.parseListValue(typ.Elem())

	case constant.KindPair:
		return p.parsePairValue(typ)

	case constant.KindG1Element:
		raw, err := p.groupElementLiteral()
		if err != nil {
			return nil, err
		}
		e, err := constant.G1FromCompressed(raw)
		if err != nil {
			return nil, p.errorf("bad bls12_381_G1_element literal: %v", err)
		}
		return e, nil

	case constant.KindG2Element:
		raw, err := p.groupElementLiteral()
		if err != nil {
			return nil, err
		}
		e, err := constant.G2FromCompressed(raw)
		if err != nil {
			return nil, p.errorf("bad bls12_381_G2_element literal: %v", err)
		}
		return e, nil

	default:
		return nil, p.errorf("%s has no literal syntax", typ)
	}
}

// parseListValue parses `[v, v, ...]` with every element of the given
// type. curToken is '[' on entry.
func (p *Parser) parseListValue(elem constant.Type) (constant.Constant, error) {
	if !p.curTokenIs(token.LBRACKET) {
		return nil, p.errorf("expected %s, found %s", describeType(token.LBRACKET), describe(p.curToken))
	}
	items := []constant.Constant{}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken() // consume ']'
		return &constant.List{Elem: elem, Items: items}, nil
	}
	for {
		p.nextToken()
		item, err := p.parseConstValue(elem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume ','
	}
	if err := p.expectPeek(token.RBRACKET); err != nil {
		return nil, err
	}
	return &constant.List{Elem: elem, Items: items}, nil
}

// parsePairValue parses `(first, second)`. curToken is '(' on entry.
func (p *Parser) parsePairValue(typ constant.Type) (constant.Constant, error) {
	if !p.curTokenIs(token.LPAREN) {
		return nil, p.errorf("expected %s, found %s", describeType(token.LPAREN), describe(p.curToken))
	}
	p.nextToken()
	first, err := p.parseConstValue(typ.First())
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.COMMA); err != nil {
		return nil, err
	}
	p.nextToken()
	second, err := p.parseConstValue(typ.Second())
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return &constant.Pair{First: first, Second: second}, nil
}

// parseDataValue parses a structured data literal: a Constr, Map, List, I
// or B application, optionally wrapped in parentheses. The wrapped form is
// what the printer emits for a top-level data constant.
func (p *Parser) parseDataValue() (constant.Data, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.errorf("nesting exceeds %d levels", maxNesting)
	}

	if p.curTokenIs(token.LPAREN) {
		p.nextToken() // consume '('
		d, err := p.parseDataValue()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
		return d, nil
	}

	if !p.curTokenIs(token.IDENT) {
		return nil, p.errorf("expected a data constructor, found %s", describe(p.curToken))
	}
	switch p.curToken.Literal {
	case "Constr":
		if err := p.expectPeek(token.INT); err != nil {
			return nil, err
		}
		tag, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("constructor tag %s is out of range", p.curToken.Lexeme)
		}
		if err := p.expectPeek(token.LBRACKET); err != nil {
			return nil, err
		}
		fields, err := p.parseDataItems()
		if err != nil {
			return nil, err
		}
		return &constant.ConstrData{Tag: tag, Fields: fields}, nil

	case "Map":
		if err := p.expectPeek(token.LBRACKET); err != nil {
			return nil, err
		}
		pairs := []constant.DataPair{}
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken() // consume ']'
			return &constant.MapData{Pairs: pairs}, nil
		}
		for {
			if err := p.expectPeek(token.LPAREN); err != nil {
				return nil, err
			}
			p.nextToken()
			key, err := p.parseDataValue()
			if err != nil {
				return nil, err
			}
			if err := p.expectPeek(token.COMMA); err != nil {
				return nil, err
			}
			p.nextToken()
			value, err := p.parseDataValue()
			if err != nil {
				return nil, err
			}
			if err := p.expectPeek(token.RPAREN); err != nil {
				return nil, err
			}
			pairs = append(pairs, constant.DataPair{Key: key, Value: value})
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken() // consume ','
		}
		if err := p.expectPeek(token.RBRACKET); err != nil {
			return nil, err
		}
		return &constant.MapData{Pairs: pairs}, nil

	case "List":
		if err := p.expectPeek(token.LBRACKET); err != nil {
			return nil, err
		}
		items, err := p.parseDataItems()
		if err != nil {
			return nil, err
		}
		return &constant.ListData{Items: items}, nil

	case "I":
		if err := p.expectPeek(token.INT); err != nil {
			return nil, err
		}
		n, err := p.bigIntLiteral()
		if err != nil {
			return nil, err
		}
		return &constant.IData{Value: n}, nil

	case "B":
		if err := p.expectPeek(token.BYTES); err != nil {
			return nil, err
		}
		raw, err := p.bytesLiteral()
		if err != nil {
			return nil, err
		}
		return &constant.BData{Value: raw}, nil

	default:
		return nil, p.errorf("unknown data constructor %q", p.curToken.Literal)
	}
}

// parseDataItems reads the comma-separated tail of a data list. curToken
// is '[' on entry.
func (p *Parser) parseDataItems() ([]constant.Data, error) {
	items := []constant.Data{}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken() // consume ']'
		return items, nil
	}
	for {
		p.nextToken()
		item, err := p.parseDataValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume ','
	}
	if err := p.expectPeek(token.RBRACKET); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) bigIntLiteral() (*big.Int, error) {
	n, ok := new(big.Int).SetString(p.curToken.Literal, 10)
	if !ok {
		return nil, p.errorf("malformed integer literal %q", p.curToken.Lexeme)
	}
	return n, nil
}

func (p *Parser) bytesLiteral() ([]byte, error) {
	raw, err := hex.DecodeString(p.curToken.Literal)
	if err != nil {
		return nil, p.errorf("bytestring literal %q needs an even number of hex digits", p.curToken.Lexeme)
	}
	return raw, nil
}

func (p *Parser) groupElementLiteral() ([]byte, error) {
	if !p.curTokenIs(token.HEX) {
		return nil, p.errorf("expected a 0x-prefixed group element literal, found %s", describe(p.curToken))
	}
	raw, err := hex.DecodeString(p.curToken.Literal)
	if err != nil {
		return nil, p.errorf("group element literal %q needs an even number of hex digits", p.curToken.Lexeme)
	}
	return raw, nil
}
