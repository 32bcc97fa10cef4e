package types

// ConfigurationRecord is one normalized interface profile row.
type ConfigurationRecord struct {
	Name                  string
	InterfaceSelector     string
	PortFrom              string
	PortTo                string
	AssociatedPolicyGroup string
}

// Row holds the raw cells of a worksheet data row.
type Row struct {
	Number            int // 1-based row number in the worksheet
	Name              string
	InterfaceSelector string
	PortRange         string
	PolicyGroup       string
}

// IsBlank reports whether every cell of the row is empty.
func (r Row) IsBlank() bool {
	return r.Name == "" && r.InterfaceSelector == "" && r.PortRange == "" && r.PolicyGroup == ""
}

type ConversionResult struct {
	InputFile      string
	OutputFile     string
	SheetsRead     int
	RecordsWritten int
}

type Summary struct {
	Folder       string
	Results      []ConversionResult
	TotalRecords int
}
