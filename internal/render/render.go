package render

import (
	"fmt"
	"strings"

	"github.com/ryanisaacg/budget/internal/model"
)

// Tree formats the budget tree for display: one line per account in
// pre-order, two spaces of indent per depth level, balances rounded to
// two decimals.
func Tree(root *model.Account) string {
	var b strings.Builder
	writeLevel(&b, root, 0)
	return b.String()
}

func writeLevel(b *strings.Builder, acct *model.Account, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString(fmt.Sprintf("%s: %.2f\n", acct.Name, acct.Balance()))
	for i := range acct.Children {
		writeLevel(b, acct.Children[i].Account, level+1)
	}
}
