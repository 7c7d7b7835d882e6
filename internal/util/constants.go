package util

// DateFormat 归档目录按天划分
const DateFormat = "2006-01-02"

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 评分量表
const (
	RatingMin     = 0
	RatingMax     = 10
	DefaultTarget = 7
	DefaultActual = 5
)

// 导出文件约定，需与历史导出保持一致
const (
	ExportFilename = "organisationsdiagnostik_meihei.xlsx"
	MimeXLSX       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeSVG        = "image/svg+xml"
)

const (
	SheetDetail   = "Detail"
	SheetOverview = "Overview"
)

// 表头（固定德语标签）
const (
	ColumnCategory  = "Wesenselement"
	ColumnSubtopic  = "Unterkapitel"
	ColumnTarget    = "SOLL"
	ColumnActual    = "IST"
	ColumnDeviation = "Abweichung"
)

const SessionCookieName = "meihei_session"
