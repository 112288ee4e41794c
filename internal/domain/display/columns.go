package display

import (
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/types"
)

// Column rendering constants.
const (
	PinnedCellClass = "suppress-movable-col"
	SortDescending  = "desc"
	LinkRenderer    = "link"
)

var headerTooltips = map[string]string{
	types.FieldPass1:      "Pass@1 is probability of passing a given problem in one attempt.",
	types.FieldPass1COT:   "Pass@1 is probability of passing a given problem in one attempt with CoT.",
	types.FieldPass1NoCOT: "Pass@1 is probability of passing a given problem in one attempt without CoT.",
	types.FieldEasy:       "Pass@1 on problems with Easy difficulty",
	types.FieldMedium:     "Pass@1 on problems with Medium difficulty",
	types.FieldHard:       "Pass@1 on problems with Hard difficulty",
}

// Columns maps field names to column descriptors. Fields that are only
// carried for tooltips or styling produce no column.
func Columns(fieldNames []string, models []model.ModelDescriptor) []types.ColumnDescriptor {
	out := make([]types.ColumnDescriptor, 0, len(fieldNames))
	for _, f := range fieldNames {
		if c, ok := column(f, models); ok {
			out = append(out, c)
		}
	}
	return out
}

func column(field string, models []model.ModelDescriptor) (types.ColumnDescriptor, bool) {
	c := types.ColumnDescriptor{Field: field}
	switch field {
	case types.FieldCutoff, types.FieldContaminated:
		return c, false
	case types.FieldRank:
		c.SuppressMovable = true
		c.CellClass = PinnedCellClass
	case types.FieldModel:
		c.SuppressMovable = true
		c.CellClass = PinnedCellClass
		c.Flex = 2
		c.TooltipField = types.FieldCutoff
		c.CellRenderer = LinkRenderer
		c.Links = links(models)
	case types.FieldPass1, types.FieldPass1COT, types.FieldPass1NoCOT:
		c.HeaderTooltip = headerTooltips[field]
		c.Sort = SortDescending
	case types.FieldEasy, types.FieldMedium, types.FieldHard:
		c.HeaderTooltip = headerTooltips[field]
	}
	return c, true
}

func links(models []model.ModelDescriptor) map[string]string {
	out := make(map[string]string)
	for _, m := range models {
		if m.Link != "" {
			out[m.ModelRepr] = m.Link
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
