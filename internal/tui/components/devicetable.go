package components

import (
	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/tui/colors"
	"github.com/allbin/boardfinder/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyPath    = "path"
	columnKeyFamily  = "family"
	columnKeyVendor  = "vendor"
	columnKeyProduct = "product"
)

// DeviceTable renders discovered devices as a static bordered table.
type DeviceTable struct {
	families *boardfinder.Table
	records  []boardfinder.DeviceRecord
}

// NewDeviceTable creates a table; families decides the color of each
// family cell and may be nil.
func NewDeviceTable(families *boardfinder.Table, records []boardfinder.DeviceRecord) *DeviceTable {
	return &DeviceTable{families: families, records: records}
}

func (d *DeviceTable) columns() []table.Column {
	pathWidth := len("Device")
	for _, r := range d.records {
		if w := lipgloss.Width(r.Path); w > pathWidth {
			pathWidth = w
		}
	}
	familyWidth := len("Family")
	for _, r := range d.records {
		if w := lipgloss.Width(r.Family); w > familyWidth {
			familyWidth = w
		}
	}

	return []table.Column{
		table.NewColumn(columnKeyPath, "Device", pathWidth+2),
		table.NewColumn(columnKeyFamily, "Family", familyWidth+2),
		table.NewColumn(columnKeyVendor, "Vendor", 8),
		table.NewColumn(columnKeyProduct, "Product", 9),
	}
}

func (d *DeviceTable) rows() []table.Row {
	rows := make([]table.Row, 0, len(d.records))
	for _, r := range d.records {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPath:    r.Path,
			columnKeyFamily:  table.NewStyledCell(r.Family, styles.FamilyStyle(d.families, r.Family)),
			columnKeyVendor:  idCell(r.VendorID),
			columnKeyProduct: idCell(r.ProductID),
		}))
	}
	return rows
}

func idCell(id string) any {
	if id == boardfinder.NotAvailable {
		return table.NewStyledCell(id, styles.MutedStyle)
	}
	return id
}

func (d *DeviceTable) View() string {
	return table.New(d.columns()).
		WithRows(d.rows()).
		BorderRounded().
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(colors.Text).
			BorderForeground(colors.Surface2).
			Align(lipgloss.Left)).
		HeaderStyle(styles.HeaderStyle).
		View()
}
