// This file is part of Spindle.
//
// Spindle is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Spindle is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Spindle.  If not, see <https://www.gnu.org/licenses/>.

// Package ansi defines ANSI control codes for styles and colours.
package ansi

import "fmt"

// ansi color.
const (
	colBlack   = 0
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
	colDefault = 9
)

// ansi attribute.
const (
	attrBold      = 1
	attrUnderline = 4
)

// NormalPen is the CSI sequence for regular text.
var NormalPen = "\033[0m"

// Pens is the table of colors to be used for text.
var Pens map[string]string

// PenStyles is the table of styles to be used for text.
var PenStyles map[string]string

// ClearLine is the CSI sequence to clear the entire of the current line.
const ClearLine = "\033[2K"

// CursorStore and CursorRestore save and recall the current cursor position.
const (
	CursorStore   = "\033[s"
	CursorRestore = "\033[u"
)

// CursorMove is the CSI sequence to move the cursor n characters along the
// current line. negative values move the cursor to the left.
func CursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("\033[%dD", -n)
	} else if n > 0 {
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}

func pen(col int, bright bool) string {
	if bright {
		return fmt.Sprintf("\033[%d;1m", 30+col)
	}
	return fmt.Sprintf("\033[%dm", 30+col)
}

func init() {
	Pens = map[string]string{
		"red":     pen(colRed, true),
		"green":   pen(colGreen, true),
		"yellow":  pen(colYellow, true),
		"blue":    pen(colBlue, true),
		"magenta": pen(colMagenta, true),
		"cyan":    pen(colCyan, true),
		"white":   pen(colWhite, true),
	}

	PenStyles = map[string]string{
		"bold":      fmt.Sprintf("\033[%dm", attrBold),
		"underline": fmt.Sprintf("\033[%dm", attrUnderline),
	}
}
