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

package clocks

// pulseQueue implements heap.Interface. Pulses are ordered by target tick and
// then by registration sequence.
type pulseQueue []*PulseRequest

func (q pulseQueue) Len() int {
	return len(q)
}

func (q pulseQueue) Less(i, j int) bool {
	if q[i].target == q[j].target {
		return q[i].seq < q[j].seq
	}
	return q[i].target < q[j].target
}

func (q pulseQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *pulseQueue) Push(x any) {
	p := x.(*PulseRequest)
	p.index = len(*q)
	*q = append(*q, p)
}

func (q *pulseQueue) Pop() any {
	old := *q
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	p.index = -1
	*q = old[:n-1]
	return p
}
