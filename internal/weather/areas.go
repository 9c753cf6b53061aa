package weather

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"sort"
	"strings"
)

// areas.csv maps BMKG administrative codes to names. Province rows
// carry the bare province code; forecast areas carry the full dotted
// adm4 code.
//
//go:embed areas.csv
var areasCSV []byte

type Province struct {
	Code  string
	Name  string
	Areas []Area
}

// Area is a village-level (adm4) forecast region.
type Area struct {
	Code string
	Name string
}

// LoadProvinces parses the embedded area table, grouped by province
// and sorted by name.
func LoadProvinces() ([]Province, error) {
	r := csv.NewReader(bytes.NewReader(areasCSV))
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*Province)
	var order []string
	for _, rec := range records {
		code := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if code == "" {
			continue
		}

		provinceCode := strings.SplitN(code, ".", 2)[0]
		p, ok := byCode[provinceCode]
		if !ok {
			p = &Province{Code: provinceCode, Name: name}
			byCode[provinceCode] = p
			order = append(order, provinceCode)
		}

		if strings.Contains(code, ".") {
			p.Areas = append(p.Areas, Area{Code: code, Name: name})
		} else {
			p.Name = name
		}
	}

	provinces := make([]Province, 0, len(order))
	for _, code := range order {
		p := byCode[code]
		sort.Slice(p.Areas, func(i, j int) bool {
			return p.Areas[i].Name < p.Areas[j].Name
		})
		provinces = append(provinces, *p)
	}
	sort.Slice(provinces, func(i, j int) bool {
		return provinces[i].Name < provinces[j].Name
	})
	return provinces, nil
}

// FindArea resolves an adm4 code to its area and province.
func FindArea(provinces []Province, code string) (Area, Province, bool) {
	for _, p := range provinces {
		for _, a := range p.Areas {
			if a.Code == code {
				return a, p, true
			}
		}
	}
	return Area{}, Province{}, false
}
