package scenario

import (
	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/frontend/types"
	"github.com/pkg/errors"
	"strconv"
	"strings"
	"unicode"
)

// descriptors reads type descriptors such as "const pub [3]u8" into types.
//
// Named variables are shared across every descriptor read by the same descriptors:
// "$x" is the same PolymorphicInteger wherever it appears, and so is the constness "?c"
type descriptors struct {
	ctx    *types.TypeCtx
	polys  map[string]types.PolymorphicInteger
	consts map[string]types.Constness
}

func newDescriptors(ctx *types.TypeCtx) *descriptors {
	return &descriptors{
		ctx:    ctx,
		polys:  make(map[string]types.PolymorphicInteger),
		consts: make(map[string]types.Constness),
	}
}

// read parses src, giving every constness it creates the location span
func (d *descriptors) read(src string, span ir.Range) (types.Type, error) {
	p := &descriptorParser{d: d, src: src, span: span}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if !p.done() {
		return nil, p.errorf("unexpected '%s' after type", p.src[p.pos:])
	}
	return t, nil
}

type descriptorParser struct {
	d    *descriptors
	src  string
	pos  int
	span ir.Range
}

func (p *descriptorParser) errorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

func (p *descriptorParser) done() bool { return p.pos >= len(p.src) }

func (p *descriptorParser) skipSpaces() {
	for !p.done() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// keyword consumes word if it comes next as a whole word
func (p *descriptorParser) keyword(word string) bool {
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, word) {
		return false
	}
	if len(rest) > len(word) && isIdentChar(rune(rest[len(word)])) {
		return false
	}
	p.pos += len(word)
	return true
}

func (p *descriptorParser) consume(c byte) bool {
	if !p.done() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *descriptorParser) ident() string {
	start := p.pos
	for !p.done() && isIdentChar(rune(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *descriptorParser) number() (uint64, bool) {
	start := p.pos
	for !p.done() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.ParseUint(p.src[start:p.pos], 10, 64)
	return n, err == nil
}

type modifiers struct {
	constness  *types.Constness
	visibility types.Visibility
}

func (p *descriptorParser) parseModifiers() (modifiers, error) {
	var mods modifiers
	for {
		p.skipSpaces()
		switch {
		case p.keyword("const"):
			if mods.constness != nil {
				return mods, p.errorf("constness given more than once")
			}
			yes := types.ConstYes(p.span)
			mods.constness = &yes
		case p.keyword("pub"):
			mods.visibility = types.Public
		case p.consume('?'):
			if mods.constness != nil {
				return mods, p.errorf("constness given more than once")
			}
			name := p.ident()
			if name == "" {
				return mods, p.errorf("expected a name after '?'")
			}
			named, ok := p.d.consts[name]
			if !ok {
				named = p.d.ctx.NewConstVariable()
				p.d.consts[name] = named
			}
			mods.constness = &named
		default:
			return mods, nil
		}
	}
}

func (mods modifiers) constOr(fallback types.Constness) types.Constness {
	if mods.constness != nil {
		return *mods.constness
	}
	return fallback
}

func (p *descriptorParser) parseType() (types.Type, error) {
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	nonConst := types.ConstNo(p.span)
	start := p.pos

	switch {
	case p.done():
		return nil, p.errorf("expected a type")

	case p.consume('['):
		var size types.ArraySize
		if p.consume(']') {
			size = types.VariableSize
		} else {
			n, ok := p.number()
			if !ok || !p.consume(']') {
				return nil, p.errorf("expected an array length followed by ']'")
			}
			size = types.FixedSize(n)
		}
		if mods.constness != nil {
			return nil, p.errorf("arrays cannot be const, their elements can")
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.Array{Visibility: mods.visibility, Size: size, Elem: elem}, nil

	case p.consume('('):
		p.skipSpaces()
		if p.consume(')') {
			return types.Unit{}, p.onlyScalarsHaveModifiers(mods, "()")
		}
		var elems []types.Type
		for {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			p.skipSpaces()
			if p.consume(')') {
				break
			}
			if !p.consume(',') {
				return nil, p.errorf("expected ',' or ')' in tuple")
			}
		}
		return types.Tuple{Elems: elems}, p.onlyScalarsHaveModifiers(mods, "tuples")

	case p.consume('$'):
		name := p.ident()
		if name == "" {
			return nil, p.errorf("expected a name after '$'")
		}
		if mods.visibility == types.Public {
			return nil, p.errorf("integer literals cannot be public")
		}
		if poly, ok := p.d.polys[name]; ok {
			if mods.constness != nil {
				return nil, p.errorf("the constness of $%s is set where it is first used", name)
			}
			return poly, nil
		}
		// like a literal, the constness is pending unless given
		var constness types.Constness
		if mods.constness != nil {
			constness = *mods.constness
		} else {
			constness = p.d.ctx.NewConstVariable()
		}
		poly := p.d.ctx.IntLiteral(constness)
		p.d.polys[name] = poly
		return poly, nil
	}

	word := p.ident()
	switch {
	case word == "":
		return nil, p.errorf("unexpected '%s'", p.src[start:])
	case word == "Field":
		return types.FieldElement{Const: mods.constOr(nonConst), Visibility: mods.visibility}, nil
	case word == "bool":
		return types.Bool{}, p.onlyScalarsHaveModifiers(mods, "bool")
	case word == "error":
		return types.Error{}, p.onlyScalarsHaveModifiers(mods, "error")
	case word == "unspecified":
		return types.Unspecified{}, p.onlyScalarsHaveModifiers(mods, "unspecified")
	case len(word) > 1 && (word[0] == 'u' || word[0] == 'i') && isDigits(word[1:]):
		bits, err := strconv.ParseUint(word[1:], 10, 32)
		if err != nil || bits == 0 {
			return nil, p.errorf("invalid integer width in %s", word)
		}
		sign := types.Unsigned
		if word[0] == 'i' {
			sign = types.Signed
		}
		return types.Integer{
			Const:      mods.constOr(nonConst),
			Visibility: mods.visibility,
			Sign:       sign,
			Bits:       uint32(bits),
		}, nil
	}

	def, ok := p.d.ctx.Structs.Lookup(word)
	if !ok {
		return nil, &unknownStructError{name: word}
	}
	if mods.constness != nil {
		return nil, p.errorf("structs cannot be const, their fields can")
	}
	return types.Struct{Visibility: mods.visibility, Def: def}, nil
}

func (p *descriptorParser) onlyScalarsHaveModifiers(mods modifiers, what string) error {
	if mods.constness != nil || mods.visibility == types.Public {
		return p.errorf("%s cannot be const or public", what)
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// unknownStructError is reported as ilerr.NewUnknownStruct rather than as a malformed type
type unknownStructError struct{ name string }

func (e *unknownStructError) Error() string { return "unknown struct " + e.name }
