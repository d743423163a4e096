package extract

// Worksheet names and their accepted alternate spellings. Field engineers
// hand-edit these workbooks, so every name is matched loosely.
const (
	SheetMixedMode = "Mixed Mode Info"
	SheetFiveG     = "5G Info"
	SheetEUtran    = "eUtran Parameters"
)

// SheetAliases maps each canonical sheet name to its alternates.
var SheetAliases = map[string][]string{
	SheetMixedMode: {"MixedModeInfo", "Mixed_Mode_Info"},
	SheetFiveG:     {"5GInfo", "5G_Info"},
	SheetEUtran:    {"EUtranParameters", "eUtran_Parameters"},
}

// Column alias sets, in preference order.
var (
	colCabinetFlag = []string{"Cabinet Controlling DUL", "CabinetControllingDUL"}
	colENBName     = []string{"eNodeB Name", "eNodeBName"}
	colENBID       = []string{"eNBId", "eNBID"}
	colGNBName     = []string{"gNodeB Name", "gNodeBName"}
	colGNBID       = []string{"gNBId", "gNBID"}

	colFiveGGNBName = []string{"gNB Name", "gNodeB Name"}
	colDSS          = []string{"DSS", "dss"}
	colNRCell       = []string{"NRCellDU", "NRCellDu"}
	colCellLocalID  = []string{"cellLocalId", "celllocalid"}
	colNRSector     = []string{"NRSectorCarrier", "nrsectorcarrier"}

	colEUtranCell = []string{"EutranCellFDDId", "EUtranCellFDDId"}
	colCellID     = []string{"cellId", "cellid"}
	colSectorID   = []string{"sectorId", "sectorid"}
)
