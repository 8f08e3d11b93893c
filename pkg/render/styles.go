package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/portgen/pkg/nodename"
)

var (
	errorColor  = lipgloss.Color("#FF0000")
	headerColor = lipgloss.Color("#00FFFF")
	customColor = lipgloss.Color("#FF00FF")
	hintColor   = lipgloss.Color("#888888")
)

// TableHeaders are the column titles of the allocation table.
var TableHeaders = []string{"NAME", "PORT", "ADDRESS", "ROLE", "CHAIN", "NETWORK"}

// TableRow returns the allocation table cells for n.
func TableRow(n nodename.Node) []string {
	return []string{
		n.Name(),
		strconv.Itoa(n.Port()),
		n.Addr().String(),
		n.Role.String(),
		n.Chain.String(),
		n.Network.String(),
	}
}

// Table renders nodes as a bordered table. Colours follow the terminal
// behind w and are dropped when w is not a TTY.
func Table(w io.Writer, nodes []nodename.Node) string {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	customStyle := cellStyle.Foreground(customColor)

	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		rows[i] = TableRow(n)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(headerColor)).
		Headers(TableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(nodes) && nodes[row].Chain.IsCustom():
				return customStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// Error writes err to w for a human reader. Parse errors are prefixed with
// their kind, e.g. "error[UnknownChain]:".
func Error(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true).Foreground(errorColor)
	hint := r.NewStyle().Foreground(hintColor)

	prefix := "error"
	if kind := nodename.KindName(err); kind != "" {
		prefix = fmt.Sprintf("error[%s]", kind)
	}
	fmt.Fprintf(w, "%s %s\n", label.Render(prefix+":"), err)

	if nodename.IsParseError(err) {
		fmt.Fprintln(w, hint.Render("example: rpc-asset-hub-polkadot-01, val-kusama-02, boot-paseo-00"))
	}
}
