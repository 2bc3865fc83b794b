package plugwise

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Device endpoints. Stretch serves appliances and modules, Smile serves
// domain_objects.
const (
	EndpointAppliances    = "/core/appliances"
	EndpointModules       = "/core/modules"
	EndpointDomainObjects = "/core/domain_objects"
)

const (
	directionConsumed = "consumed"

	logTypeElectricityConsumed = "electricity_consumed"
	logTypeElectricityProduced = "electricity_produced"
	logTypeGasConsumed         = "gas_consumed"

	tariffPeak    = "nl_peak"
	tariffOffpeak = "nl_offpeak"
)

// Appliance is a monitored outlet or circuit as reported by a Stretch.
type Appliance struct {
	ID   string
	Name string
}

// ApplianceMap maps an electricity_point_meter service id to the appliance
// it belongs to.
type ApplianceMap map[string]Appliance

// PowerSample is one instantaneous consumed-power value for a mapped
// appliance.
type PowerSample struct {
	Appliance   string
	ApplianceID string
	ModuleID    string
	MeterID     string
	Watts       float64
	// LogDate is the device's own timestamp for the measurement.
	LogDate string
}

// MeterTotals holds the cumulative counters reported by a Smile.
type MeterTotals struct {
	ConsumedPeakKWh    float64
	ConsumedOffpeakKWh float64
	ProducedPeakKWh    float64
	ProducedOffpeakKWh float64
	GasM3              float64
	LogDate            string
}

func (m MeterTotals) TotalConsumedKWh() float64 {
	return m.ConsumedPeakKWh + m.ConsumedOffpeakKWh
}

func (m MeterTotals) TotalProducedKWh() float64 {
	return m.ProducedPeakKWh + m.ProducedOffpeakKWh
}

func (m MeterTotals) NetConsumedKWh() float64 {
	return m.TotalConsumedKWh() - m.TotalProducedKWh()
}

type measurementXML struct {
	LogDate        string `xml:"log_date,attr"`
	Directionality string `xml:"directionality,attr"`
	Tariff         string `xml:"tariff,attr"`
	Value          string `xml:",chardata"`
}

type pointMeterXML struct {
	ID           string           `xml:"id,attr"`
	Measurements []measurementXML `xml:"measurement"`
}

type appliancesDoc struct {
	XMLName    xml.Name `xml:"appliances"`
	Appliances []struct {
		ID          string          `xml:"id,attr"`
		Name        string          `xml:"name"`
		PointMeters []pointMeterXML `xml:"services>electricity_point_meter"`
	} `xml:"appliance"`
}

type modulesDoc struct {
	XMLName xml.Name `xml:"modules"`
	Modules []struct {
		ID          string          `xml:"id,attr"`
		PointMeters []pointMeterXML `xml:"services>electricity_point_meter"`
	} `xml:"module"`
}

type cumulativeLogXML struct {
	Type         string           `xml:"type"`
	Unit         string           `xml:"unit"`
	Measurements []measurementXML `xml:"period>measurement"`
}

type domainObjectsDoc struct {
	XMLName   xml.Name `xml:"domain_objects"`
	Locations []struct {
		ID             string             `xml:"id,attr"`
		Name           string             `xml:"name"`
		CumulativeLogs []cumulativeLogXML `xml:"logs>cumulative_log"`
	} `xml:"location"`
}

// ParseAppliances extracts the point-meter to appliance mapping from a
// /core/appliances payload.
func ParseAppliances(data []byte) (ApplianceMap, error) {
	var doc appliancesDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse appliances: %w", err)
	}

	mapping := ApplianceMap{}
	for _, a := range doc.Appliances {
		name := a.Name
		if name == "" {
			name = "Unknown"
		}
		for _, pm := range a.PointMeters {
			if pm.ID == "" {
				continue
			}
			mapping[pm.ID] = Appliance{ID: a.ID, Name: name}
		}
	}
	return mapping, nil
}

// ParsePowerSamples extracts consumed-direction measurements from a
// /core/modules payload, keeping only meters present in the mapping.
// Unparseable values count as 0 watts.
func ParsePowerSamples(data []byte, mapping ApplianceMap) ([]PowerSample, error) {
	var doc modulesDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse modules: %w", err)
	}

	var samples []PowerSample
	for _, mod := range doc.Modules {
		for _, pm := range mod.PointMeters {
			appliance, ok := mapping[pm.ID]
			if !ok {
				continue
			}
			for _, m := range pm.Measurements {
				if m.Directionality != directionConsumed {
					continue
				}
				watts, err := strconv.ParseFloat(m.Value, 64)
				if err != nil {
					watts = 0
				}
				samples = append(samples, PowerSample{
					Appliance:   appliance.Name,
					ApplianceID: appliance.ID,
					ModuleID:    mod.ID,
					MeterID:     pm.ID,
					Watts:       watts,
					LogDate:     m.LogDate,
				})
				break
			}
		}
	}
	return samples, nil
}

// ParseMeterTotals extracts the cumulative meter counters from a
// /core/domain_objects payload. All locations are scanned; the hardware
// reports the home counters on a single location.
func ParseMeterTotals(data []byte) (*MeterTotals, error) {
	var doc domainObjectsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse domain objects: %w", err)
	}

	totals := &MeterTotals{}
	found := false
	for _, loc := range doc.Locations {
		for _, cl := range loc.CumulativeLogs {
			for _, m := range cl.Measurements {
				value, err := strconv.ParseFloat(m.Value, 64)
				if err != nil {
					return nil, fmt.Errorf("cumulative %s measurement %q: %w", cl.Type, m.Value, err)
				}
				switch cl.Type {
				case logTypeElectricityConsumed:
					switch m.Tariff {
					case tariffPeak:
						totals.ConsumedPeakKWh = value
					case tariffOffpeak:
						totals.ConsumedOffpeakKWh = value
					default:
						continue
					}
				case logTypeElectricityProduced:
					switch m.Tariff {
					case tariffPeak:
						totals.ProducedPeakKWh = value
					case tariffOffpeak:
						totals.ProducedOffpeakKWh = value
					default:
						continue
					}
				case logTypeGasConsumed:
					totals.GasM3 = value
				default:
					continue
				}
				found = true
				if m.LogDate != "" {
					totals.LogDate = m.LogDate
				}
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("no cumulative meter logs in domain objects")
	}
	return totals, nil
}
