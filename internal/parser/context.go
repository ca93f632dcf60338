package parser

import "github.com/cwbudde/langcore/internal/token"

// ParseContext consolidates the scattered parsing-mode flags and the
// block-nesting stack into one value, so speculative parsing can
// snapshot and restore all of it atomically alongside the scanner and
// token-cursor state (see state.go), grounded on the teacher's
// ParseContext.
type ParseContext struct {
	inLoop      int // nesting depth of while/for, for break/continue validation
	blockStack  []BlockContext
}

// NewParseContext returns an empty context.
func NewParseContext() *ParseContext {
	return &ParseContext{}
}

// PushBlock records entry into a block-level construct.
func (c *ParseContext) PushBlock(kind string, start token.Pos) {
	c.blockStack = append(c.blockStack, BlockContext{Kind: kind, Start: start})
}

// PopBlock records exit from the innermost block-level construct.
func (c *ParseContext) PopBlock() {
	if len(c.blockStack) > 0 {
		c.blockStack = c.blockStack[:len(c.blockStack)-1]
	}
}

// CurrentBlock returns the innermost open block, or nil outside any.
func (c *ParseContext) CurrentBlock() *BlockContext {
	if len(c.blockStack) == 0 {
		return nil
	}
	return &c.blockStack[len(c.blockStack)-1]
}

// EnterLoop/LeaveLoop bracket while/for bodies so break/continue parsing
// can check InLoop().
func (c *ParseContext) EnterLoop() { c.inLoop++ }
func (c *ParseContext) LeaveLoop() { c.inLoop-- }
func (c *ParseContext) InLoop() bool { return c.inLoop > 0 }

// snapshot is a value copy used by ParserState (state.go) to restore the
// context after a failed speculative parse.
type contextSnapshot struct {
	inLoop     int
	blockStack []BlockContext
}

func (c *ParseContext) snapshot() contextSnapshot {
	stack := make([]BlockContext, len(c.blockStack))
	copy(stack, c.blockStack)
	return contextSnapshot{inLoop: c.inLoop, blockStack: stack}
}

func (c *ParseContext) restore(s contextSnapshot) {
	c.inLoop = s.inLoop
	c.blockStack = s.blockStack
}
