package unicodedata

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction mirrors font.Direction without importing package font, so
// unicodedata stays a leaf dependency (font doesn't need to know about
// segmentation, and unicodedata doesn't need a Handle/Face).
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Run is a maximal contiguous span of text sharing one script and one
// bidi embedding level.
type Run struct {
	Text      string
	Start     int // byte offset into the original text
	End       int
	Direction Direction
	Script    Script
	Level     int
}

// Segment splits text into direction+script runs: bidi levels come
// from golang.org/x/text/unicode/bidi, scripts from DetectScript, with
// ScriptCommon/ScriptInherited runs resolved to a neighboring concrete
// script so "a,b" shapes as one Latin run rather than three.
func Segment(text string, base Direction) []Run {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	levels := bidiLevels(text, len(runes), base)
	scripts := resolveScripts(detectScripts(runes))
	return buildRuns(text, runes, levels, scripts)
}

func bidiLevels(text string, n int, base Direction) []int {
	levels := make([]int, n)

	dir := bidi.Neutral
	if base == DirectionRTL {
		dir = bidi.RightToLeft
	}

	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(dir)); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}
	return levels
}

func detectScripts(runes []rune) []Script {
	scripts := make([]Script, len(runes))
	for i, r := range runes {
		scripts[i] = DetectScript(r)
	}
	return scripts
}

// resolveScripts assigns every ScriptCommon/ScriptInherited rune the
// script of a neighboring concrete (non-Common, non-Inherited) rune,
// preferring the one before it, so punctuation and combining marks
// join the run they visually belong to instead of splitting it.
func resolveScripts(scripts []Script) []Script {
	resolved := make([]Script, len(scripts))
	copy(resolved, scripts)

	last := ScriptCommon
	for i := range resolved {
		if resolved[i] == ScriptInherited {
			resolved[i] = last
		} else if resolved[i] != ScriptCommon {
			last = resolved[i]
		}
	}

	last = ScriptCommon
	for i := range resolved {
		if resolved[i] != ScriptCommon {
			last = resolved[i]
			continue
		}
		next := last
		for j := i + 1; j < len(resolved); j++ {
			if resolved[j] != ScriptCommon {
				next = resolved[j]
				break
			}
		}
		resolved[i] = commonScriptOf(last, next)
	}

	return resolved
}

func commonScriptOf(prev, next Script) Script {
	switch {
	case prev == next:
		return prev
	case next == ScriptCommon:
		return prev
	case prev == ScriptCommon:
		return next
	default:
		return prev
	}
}

func buildRuns(text string, runes []rune, levels []int, scripts []Script) []Run {
	offsets := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		offsets[i] = offset
		offset += len(string(r))
	}
	offsets[len(runes)] = len(text)

	runs := make([]Run, 0, 4)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && levels[i] == levels[start] && scripts[i] == scripts[start] {
			continue
		}
		runs = append(runs, makeRun(text, offsets, start, i, levels[start], scripts[start]))
		start = i
	}
	return runs
}

func makeRun(text string, offsets []int, startRune, endRune, level int, script Script) Run {
	startByte, endByte := offsets[startRune], offsets[endRune]
	dir := DirectionLTR
	if level%2 == 1 {
		dir = DirectionRTL
	}
	return Run{
		Text:      text[startByte:endByte],
		Start:     startByte,
		End:       endByte,
		Direction: dir,
		Script:    script,
		Level:     level,
	}
}
