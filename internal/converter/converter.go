package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nconklindev/ifprofile/internal/config"
	"github.com/nconklindev/ifprofile/internal/normalizer"
	"github.com/nconklindev/ifprofile/internal/types"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// HeaderRows is the number of leading rows skipped on every worksheet.
const HeaderRows = 1

var ErrNoWorkbooks = errors.New("no workbooks found")

type Options struct {
	Extensions []string
	OutputDir  string
	Columns    config.Columns
	CSV        CSVOptions
	Logger     *zap.Logger
}

// OptionsFromConfig maps a loaded config onto conversion options.
func OptionsFromConfig(cfg *config.Config, logger *zap.Logger) Options {
	return Options{
		Extensions: cfg.Extensions,
		OutputDir:  cfg.OutputDir,
		Columns:    cfg.Columns,
		CSV:        CSVOptions{BOM: cfg.CSV.BOM, CRLF: cfg.CSV.CRLF},
		Logger:     logger,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Sheet is the data rows of one worksheet.
type Sheet struct {
	Name string
	Rows []types.Row
}

// ListWorkbooks returns the files directly inside folder whose extension is in
// extensions, sorted by name. Office lock files (~$name.xlsx) are skipped.
func ListWorkbooks(folder string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool)
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

// OutputPath returns where the CSV for input is written: <name>.csv in
// outputDir, or beside input when outputDir is empty.
func OutputPath(input, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, filepath.Base(input)+".csv")
}

// ReadWorkbook reads the data rows of every worksheet in the workbook.
func ReadWorkbook(path string, columns config.Columns) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}

		sheet := Sheet{Name: name}
		for i := HeaderRows; i < len(rows); i++ {
			row := types.Row{
				Number:            i + 1,
				Name:              cellAt(rows[i], columns.Name),
				InterfaceSelector: cellAt(rows[i], columns.InterfaceSelector),
				PortRange:         cellAt(rows[i], columns.PortRange),
				PolicyGroup:       cellAt(rows[i], columns.PolicyGroup),
			}
			if row.IsBlank() {
				continue
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

// cellAt returns the trimmed value at the 1-based column pos, or "" when the
// row is shorter.
func cellAt(row []string, pos int) string {
	if pos < 1 || pos > len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos-1])
}

// ConvertWorkbook normalizes every worksheet of inputFile and writes all
// records to a single CSV file.
func ConvertWorkbook(inputFile, outputFile string, opts Options) (*types.ConversionResult, error) {
	log := opts.logger()

	sheets, err := ReadWorkbook(inputFile, opts.Columns)
	if err != nil {
		return nil, err
	}

	var records []types.ConfigurationRecord
	for _, sheet := range sheets {
		// Name carry-forward starts over on every worksheet.
		recs, err := normalizer.NormalizeRows(sheet.Rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		log.Debug("sheet normalized",
			zap.String("file", inputFile),
			zap.String("sheet", sheet.Name),
			zap.Int("records", len(recs)))
		records = append(records, recs...)
	}

	if err := writeCSVFile(outputFile, records, opts.CSV); err != nil {
		return nil, err
	}

	return &types.ConversionResult{
		InputFile:      inputFile,
		OutputFile:     outputFile,
		SheetsRead:     len(sheets),
		RecordsWritten: len(records),
	}, nil
}

func writeCSVFile(path string, records []types.ConfigurationRecord, opts CSVOptions) (err error) {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteCSV(outFile, RecordSchema, records, opts)
}

// ConvertFolder converts every workbook in folder. The first failure aborts
// the run.
func ConvertFolder(folder string, opts Options, progressChan chan<- float64) (*types.Summary, error) {
	log := opts.logger()

	files, err := ListWorkbooks(folder, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w (extensions: %s)", folder, ErrNoWorkbooks, strings.Join(opts.Extensions, ", "))
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	summary := &types.Summary{Folder: folder}
	for i, file := range files {
		output := OutputPath(file, opts.OutputDir)

		result, err := ConvertWorkbook(file, output, opts)
		if err != nil {
			log.Error("conversion failed", zap.String("file", file), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}
		log.Info("workbook converted",
			zap.String("file", file),
			zap.String("output", output),
			zap.Int("sheets", result.SheetsRead),
			zap.Int("records", result.RecordsWritten))

		summary.Results = append(summary.Results, *result)
		summary.TotalRecords += result.RecordsWritten

		if progressChan != nil {
			select {
			case progressChan <- float64(i+1) / float64(len(files)):
			default:
			}
		}
	}

	return summary, nil
}
