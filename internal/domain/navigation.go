package domain

import "strings"

type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "prev", "previous":
		return Previous, true
	case "next":
		return Next, true
	}
	return 0, false
}

// StepEntity returns current+dir when it stays within [1, max]. The bool
// is false at a boundary, meaning the control is disabled. Alternate forms
// with ids above max (e.g. 10034) have both directions disabled.
func StepEntity(current int, dir Direction, max int) (int, bool) {
	return step(current, dir, max)
}

// StepGeneration is StepEntity over generation ordinals.
func StepGeneration(ordinal int, dir Direction) (int, bool) {
	return step(ordinal, dir, len(Generations))
}

func step(current int, dir Direction, max int) (int, bool) {
	target := current + int(dir)
	if target < 1 || target > max {
		return current, false
	}
	return target, true
}

// PageVariant selects how a successful search hands off to the next page.
type PageVariant string

const (
	VariantInline        PageVariant = "inline"
	VariantRedirect      PageVariant = "redirect"
	VariantPrefetchChain PageVariant = "prefetch-chain"
)

func ParsePageVariant(s string) (PageVariant, bool) {
	switch PageVariant(s) {
	case VariantInline, VariantRedirect, VariantPrefetchChain:
		return PageVariant(s), true
	}
	return "", false
}
