// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"strings"
)

// tokens is the result of dividing user input on whitespace. tokens are
// consumed in order with get().
type tokens struct {
	tokens []string
	curr   int
}

func tokeniseInput(input string) *tokens {
	tk := &tokens{
		tokens: strings.Fields(input),
	}
	return tk
}

func (tk *tokens) get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// getUpper is the same as get() but the token is returned in upper case.
func (tk *tokens) getUpper() (string, bool) {
	s, ok := tk.get()
	return strings.ToUpper(s), ok
}

func (tk *tokens) remaining() int {
	return len(tk.tokens) - tk.curr
}

func (tk *tokens) remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}
