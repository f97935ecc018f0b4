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

package terminal

import (
	"fmt"
	"strings"
)

// Prompt specifies the prompt text and the prompt type.
type Prompt struct {
	Type PromptType

	// the address of the next instruction and the instruction itself
	Address uint16
	Content string

	// the CPU is halted and waiting for an interrupt
	Halted bool
}

// PromptType identifies the type of information in the prompt.
type PromptType int

// List of prompt types.
const (
	PromptTypeCPUStep PromptType = iota
	PromptTypeConfirm
)

// String returns the prompt with "standard" decoration.
func (p Prompt) String() string {
	if p.Type == PromptTypeConfirm {
		return p.Content
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[ %04x %s", p.Address, strings.TrimSpace(p.Content)))
	if p.Halted {
		s.WriteString(" (halted)")
	}
	s.WriteString(" ] >> ")

	return s.String()
}
