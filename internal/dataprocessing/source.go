package dataprocessing

// SourceKind identifies how an input blob is encoded.
type SourceKind string

const (
	SourceDelimited SourceKind = "delimited"
	SourceWorkbook  SourceKind = "workbook"
)

// DetectSource checks magic bytes: a ZIP local header means an .xlsx workbook,
// everything else is treated as UTF-8 delimited text.
func DetectSource(data []byte) SourceKind {
	if len(data) >= 4 && data[0] == 'P' && data[1] == 'K' && data[2] == 0x03 && data[3] == 0x04 {
		return SourceWorkbook
	}
	return SourceDelimited
}

// DecodeAuto parses data as a workbook or as delimited text depending on its
// content. Only workbook decoding can fail; delimited parsing is permissive.
func DecodeAuto(data []byte) (*Table, error) {
	if DetectSource(data) == SourceWorkbook {
		return LoadWorkbook(data)
	}
	return Parse(string(data)), nil
}
