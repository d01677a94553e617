// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package selfmodel

import (
	"fmt"
	"sort"
	"strings"
)

// Render produces the fixed human-readable rendering returned by the
// introspect tool.
func Render(m SelfModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Context store health: %s\n\n", m.Health)

	fmt.Fprintf(&b, "Identity: %d active entries, %d groups\n", m.Identity.ActiveCount, m.Identity.GroupCount)
	if len(m.Identity.ByType) > 0 {
		types := make([]string, 0, len(m.Identity.ByType))
		for t := range m.Identity.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "  - %s: %d\n", t, m.Identity.ByType[t])
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Coverage: %.0f%% of catalog types have active entries, %d untyped entries\n",
		m.Coverage.Score*100, m.Coverage.UntypedCount)
	if len(m.Coverage.TypesWithout) > 0 {
		fmt.Fprintf(&b, "  missing: %s\n", strings.Join(m.Coverage.TypesWithout, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Freshness: %d updated within 7 days, %d stale (>90 days)\n",
		m.Freshness.RecentCount, m.Freshness.StaleCount)
	b.WriteString("\n")

	if len(m.Gaps) == 0 {
		b.WriteString("Gaps: none identified\n\n")
	} else {
		b.WriteString("Gaps:\n")
		for _, g := range m.Gaps {
			marker := "ℹ"
			if g.Severity == SeverityWarning {
				marker = "⚠"
			}
			fmt.Fprintf(&b, "  %s %s — %s\n", marker, g.Description, g.Suggestion)
		}
		b.WriteString("\n")
	}

	if len(m.Contradictions) == 0 {
		b.WriteString("Contradictions: none identified\n\n")
	} else {
		b.WriteString("Contradictions:\n")
		for _, c := range m.Contradictions {
			fmt.Fprintf(&b, "  ⚠ %s and %s: %s\n", c.EntryA, c.EntryB, c.Explanation)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Pending actions awaiting review: %d\n", m.PendingActionsCount)
	fmt.Fprintf(&b, "Improvements in the last day: %d\n", m.RecentImprovements)

	return b.String()
}
