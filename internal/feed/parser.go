// Package feed reads incident records out of XML feeds: the fixed-schema
// feed exported by the incident form, and a schema-free fallback for feeds
// whose element names are not known in advance.
package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"incidencies/internal/models"
)

// xmlIncident maps the form export's element names, verbatim, onto the raw
// record fields. The names are machine-generated from the form's question
// labels, underscores and all, so they look odd but must not be cleaned up.
type xmlIncident struct {
	TimestampRaw  string `xml:"Marca_de_temps"`
	Date          string `xml:"Data_de_incidència"`
	Time          string `xml:"Hora_de_incidència"`
	Email         string `xml:"Adreça_electrònica"`
	Informant     string `xml:"Nom_i_cognoms_d_informant"`
	Location      string `xml:"Ubicació"`
	EquipmentType string `xml:"Tipus_de_equip__PC__impressora__projector__televisor__switch_"`
	Model         string `xml:"Model_de_equip"`
	AssetCode     string `xml:"Codi_d_ordinador__SACE_"`
	Description   string `xml:"Descripció_de_la_incidència"`
	Priority      string `xml:"Prioritat_de_la_incidència"`
	Operational   string `xml:"_El_equipament_funciona_actualment_"`
}

// xmlDocument collects the incident elements under whatever root element
// the feed uses.
type xmlDocument struct {
	Incidents []xmlIncident `xml:"Incidencia"`
}

// Parser reads the fixed-schema incident feed.
type Parser struct{}

// NewParser creates a feed parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses the feed at path.
func (p *Parser) ParseFile(path string) ([]models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	return p.Parse(data)
}

// Parse decodes feed bytes into raw records, in document order. Missing
// elements come back as empty strings; a feed with no incident elements is
// a valid, empty feed.
func (p *Parser) Parse(data []byte) ([]models.RawRecord, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed XML: %w", err)
	}

	records := make([]models.RawRecord, 0, len(doc.Incidents))
	for _, inc := range doc.Incidents {
		records = append(records, inc.record())
	}

	return records, nil
}

func (inc xmlIncident) record() models.RawRecord {
	return models.RawRecord{
		TimestampRaw:  strings.TrimSpace(inc.TimestampRaw),
		Date:          strings.TrimSpace(inc.Date),
		Time:          strings.TrimSpace(inc.Time),
		Email:         strings.TrimSpace(inc.Email),
		Informant:     strings.TrimSpace(inc.Informant),
		Location:      strings.TrimSpace(inc.Location),
		EquipmentType: strings.TrimSpace(inc.EquipmentType),
		Model:         strings.TrimSpace(inc.Model),
		AssetCode:     strings.TrimSpace(inc.AssetCode),
		Description:   strings.TrimSpace(inc.Description),
		Priority:      strings.TrimSpace(inc.Priority),
		Operational:   strings.TrimSpace(inc.Operational),
	}
}
