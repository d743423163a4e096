package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/quadgen/dss-templater/internal/types"
	"github.com/quadgen/dss-templater/internal/workbook"
)

// Placeholder keys anchored on the primary node.
const (
	KeyPrimaryNodeName = "xxMMBB_Primary_Node_Namexx"
	KeyLTESiteID       = "xxLTE_Site_IDxx"
	KeyLTEENBID        = "xxLTE_eNBIDxx"
	KeyNRNodeName      = "xx5G_NR_Node_Namexx"
	KeyNRGNBID         = "xx5G_NR_gNBIDxx"
)

// Band patterns in cell naming conventions: an LTE cell is named like
// SITE1_66A_1 (band 66, sector A) and its NR twin SITE1_N066A_1.
var (
	lteBandPattern = regexp.MustCompile(`_(\d+)[ABC]_`)
	nrBandPattern  = regexp.MustCompile(`_(N\d{3})[ABC]_`)
)

// Sheets holds the three worksheets the extractor reads. Any of them may be
// nil; each stage degrades on missing input instead of failing the run.
type Sheets struct {
	MixedMode *workbook.Table
	FiveG     *workbook.Table
	EUtran    *workbook.Table
}

// Result is the extractor output: the placeholder map plus the degraded
// paths encountered while building it.
type Result struct {
	Replacements map[string]string
	Warnings     []types.Warning
}

// role pairs the single-letter suffix used in cell names with the word used
// in sector-carrier placeholder keys.
type role struct {
	Letter string // A, B, C
	Word   string // Alpha, Beta, Gamma
}

var roles = [3]role{{"A", "Alpha"}, {"B", "Beta"}, {"C", "Gamma"}}

// dssCell is one qualifying row from the "5G Info" sheet.
type dssCell struct {
	NRCell   string // NRCellDU identifier
	CrossRef string // LTE cell the NR cell shares spectrum with
	LocalID  types.CellValue
	Sector   types.CellValue
}

type extractor struct {
	out      map[string]string
	warnings []types.Warning
}

// Run derives the full placeholder map from the loaded worksheets.
// Every stage is tolerant of missing sheets, columns, and malformed values:
// it records a warning and leaves the affected placeholders unresolved.
func Run(sheets Sheets) *Result {
	e := &extractor{out: make(map[string]string)}

	e.primaryNode(sheets.MixedMode)

	if gnbName, ok := e.out[KeyNRNodeName]; ok {
		cells, ok := e.dssTriple(sheets.FiveG, gnbName)
		if ok {
			e.derivedPlaceholders(cells)
			e.eutranJoin(sheets.EUtran, cells)
		}
	}

	return &Result{Replacements: e.out, Warnings: e.warnings}
}

func (e *extractor) warn(stage, format string, args ...interface{}) {
	w := types.Warning{Stage: stage, Message: fmt.Sprintf(format, args...)}
	e.warnings = append(e.warnings, w)
	log.Warn().Str("stage", w.Stage).Msg(w.Message)
}

// column resolves a header alias set and warns once when it is missing.
func (e *extractor) column(t *workbook.Table, stage string, candidates []string) int {
	idx, ok := t.FindColumn(candidates...)
	if !ok {
		e.warn(stage, "column %q not found on sheet %q", candidates[0], t.Name)
	}
	return idx
}

// primaryNode selects the site row anchoring all other identifiers and
// publishes the primary-node placeholders. Selection policy: first row whose
// cabinet-control flag is true, else the first row with a non-empty eNodeB
// name.
func (e *extractor) primaryNode(t *workbook.Table) {
	if t == nil {
		e.warn("primary-node", "worksheet %q not found, primary node placeholders unresolved", SheetMixedMode)
		return
	}

	cabinetCol := e.column(t, "primary-node", colCabinetFlag)
	enbNameCol := e.column(t, "primary-node", colENBName)
	enbIDCol := e.column(t, "primary-node", colENBID)
	gnbNameCol := e.column(t, "primary-node", colGNBName)
	gnbIDCol := e.column(t, "primary-node", colGNBID)

	row := -1
	if cabinetCol != workbook.InvalidColumn {
		for i := 0; i < t.Len(); i++ {
			if t.Cell(i, cabinetCol).Bool() {
				row = i
				break
			}
		}
	}
	if row < 0 && enbNameCol != workbook.InvalidColumn {
		for i := 0; i < t.Len(); i++ {
			if !t.Cell(i, enbNameCol).IsEmpty() {
				row = i
				break
			}
		}
	}
	if row < 0 {
		e.warn("primary-node", "no qualifying row on sheet %q", t.Name)
		return
	}

	if siteName := t.Cell(row, enbNameCol).String(); siteName != "" {
		e.out[KeyPrimaryNodeName] = siteName
		e.out[KeyLTESiteID] = siteName
		log.Info().Str("site", siteName).Msg("Primary node selected")
	}
	e.putInt(KeyLTEENBID, t.Cell(row, enbIDCol), "primary-node", "eNBId")
	if gnbName := t.Cell(row, gnbNameCol).String(); gnbName != "" {
		e.out[KeyNRNodeName] = gnbName
	}
	e.putInt(KeyNRGNBID, t.Cell(row, gnbIDCol), "primary-node", "gNBId")
}

// putInt publishes an integer-coerced placeholder, warning when a present
// value fails coercion. An absent cell is omitted silently.
func (e *extractor) putInt(key string, cell types.CellValue, stage, field string) {
	if cell.IsEmpty() {
		return
	}
	n, ok := cell.Int()
	if !ok {
		e.warn(stage, "field %s: value %q is not numeric", field, cell.String())
		return
	}
	e.out[key] = strconv.Itoa(n)
}

// dssTriple selects the three paired sector cells shared between LTE and NR
// for the given gNodeB. Qualifying rows carry a cross-reference that is
// present and not the literal "NO"; rows are sorted ascending by NRCellDU
// identifier and the first three become alpha, beta, gamma.
func (e *extractor) dssTriple(t *workbook.Table, gnbName string) ([3]dssCell, bool) {
	var none [3]dssCell
	if t == nil {
		e.warn("dss-cells", "worksheet %q not found, DSS placeholders unresolved", SheetFiveG)
		return none, false
	}

	gnbCol := e.column(t, "dss-cells", colFiveGGNBName)
	dssCol := e.column(t, "dss-cells", colDSS)
	nrCellCol := e.column(t, "dss-cells", colNRCell)
	localIDCol, _ := t.FindColumn(colCellLocalID...)
	sectorCol, _ := t.FindColumn(colNRSector...)

	if gnbCol == workbook.InvalidColumn || dssCol == workbook.InvalidColumn || nrCellCol == workbook.InvalidColumn {
		return none, false
	}

	var cells []dssCell
	for i := 0; i < t.Len(); i++ {
		if t.Cell(i, gnbCol).String() != gnbName {
			continue
		}
		crossRef := t.Cell(i, dssCol)
		if crossRef.IsEmpty() || crossRef.String() == "NO" {
			continue
		}
		cells = append(cells, dssCell{
			NRCell:   t.Cell(i, nrCellCol).String(),
			CrossRef: crossRef.String(),
			LocalID:  t.Cell(i, localIDCol),
			Sector:   t.Cell(i, sectorCol),
		})
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].NRCell < cells[j].NRCell
	})

	if len(cells) < 3 {
		e.warn("dss-cells", "found %d DSS cells for %q, need at least 3", len(cells), gnbName)
		return none, false
	}

	log.Info().Int("cells", len(cells)).Str("gnb", gnbName).Msg("DSS cells selected")
	return [3]dssCell{cells[0], cells[1], cells[2]}, true
}

// derivedPlaceholders publishes the per-role placeholders for the selected
// triple. Local IDs, sector carriers, and the raw cell identifiers do not
// depend on band parsing; placeholders whose value embeds the NR band code
// are only produced when both band patterns match on the alpha cell.
func (e *extractor) derivedPlaceholders(cells [3]dssCell) {
	for i, r := range roles {
		c := cells[i]
		e.putInt("xx5G_celllocalid"+r.Letter+"xx", c.LocalID, "dss-cells", "cellLocalId"+r.Letter)
		if s := c.Sector.String(); s != "" {
			e.out["xx5G_NRSectorCarrier_"+r.Word+"xx"] = s
		}
		e.out[KeyLTESiteID+"_X"+r.Letter+"_1"] = c.CrossRef
		e.out[KeyNRNodeName+"_N00X"+r.Letter+"_1"] = c.NRCell
	}

	siteID, hasSite := e.out[KeyLTESiteID]
	if hasSite {
		e.out[KeyLTESiteID+"_X*"] = siteID + "_X*"
	}

	lteBand := lteBandPattern.FindStringSubmatch(cells[0].CrossRef)
	nrBand := nrBandPattern.FindStringSubmatch(cells[0].NRCell)
	if lteBand == nil || nrBand == nil {
		e.warn("band-parse", "no band code in alpha cell names %q / %q", cells[0].CrossRef, cells[0].NRCell)
		return
	}
	log.Info().Str("lte_band", lteBand[1]).Str("nr_band", nrBand[1]).Msg("Bands parsed")

	band := nrBand[1]
	for _, r := range roles {
		if hasSite {
			e.out[KeyPrimaryNodeName+"_N00X"+r.Letter+"_1"] = siteID + "_" + band + r.Letter + "_1"
		}
		e.out["N00X"+r.Letter] = band + r.Letter
	}
}

// eutranJoin looks up each role's LTE cell on the "eUtran Parameters" sheet
// and publishes its numeric cell and sector IDs. A role with no matching row
// contributes nothing for that role.
func (e *extractor) eutranJoin(t *workbook.Table, cells [3]dssCell) {
	if t == nil {
		e.warn("eutran-join", "worksheet %q not found, LTE cell detail placeholders unresolved", SheetEUtran)
		return
	}

	cellNameCol := e.column(t, "eutran-join", colEUtranCell)
	cellIDCol := e.column(t, "eutran-join", colCellID)
	sectorIDCol := e.column(t, "eutran-join", colSectorID)
	if cellNameCol == workbook.InvalidColumn {
		return
	}

	for i, r := range roles {
		row := -1
		for j := 0; j < t.Len(); j++ {
			if t.Cell(j, cellNameCol).String() == cells[i].CrossRef {
				row = j
				break
			}
		}
		if row < 0 {
			e.warn("eutran-join", "LTE cell %q not found on sheet %q", cells[i].CrossRef, t.Name)
			continue
		}
		e.putInt("LTE_cellid"+r.Letter, t.Cell(row, cellIDCol), "eutran-join", "cellId")
		e.putInt("xxLTE_SectorCarrier_No_"+r.Word+"xx", t.Cell(row, sectorIDCol), "eutran-join", "sectorId")
	}
}
