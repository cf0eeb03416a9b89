package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CarrierMapping carrier-name to deliveryCompanyType lookup table,
// loaded from the ops-maintained mapping sheet
type CarrierMapping struct {
	codes          map[string]string
	defaultCarrier string
}

// NewCarrierMapping creates an empty mapping with only a default code
func NewCarrierMapping(defaultCarrier string) *CarrierMapping {
	return &CarrierMapping{
		codes:          make(map[string]string),
		defaultCarrier: defaultCarrier,
	}
}

// LoadCarrierMapping reads the mapping from the first sheet of an xlsx
// file. Column A holds the fulfillment-side carrier name, column B the
// commerce deliveryCompanyType code. The first row is a header.
func LoadCarrierMapping(path, defaultCarrier string) (*CarrierMapping, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open carrier mapping file failed: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read carrier mapping rows failed: %w", err)
	}

	m := NewCarrierMapping(defaultCarrier)
	for i, row := range rows {
		// header row
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		code := strings.TrimSpace(row[1])
		if name == "" || code == "" {
			continue
		}
		m.codes[strings.ToUpper(name)] = code
	}

	return m, nil
}

// Map returns the deliveryCompanyType for a carrier name, falling back
// to the default code for unknown carriers
func (m *CarrierMapping) Map(carrier string) string {
	if code, ok := m.codes[strings.ToUpper(strings.TrimSpace(carrier))]; ok {
		return code
	}
	return m.defaultCarrier
}

// Size reports how many carrier rows were loaded
func (m *CarrierMapping) Size() int {
	return len(m.codes)
}
