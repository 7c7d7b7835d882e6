package model

// Dataset 一张具名表格，交给导出序列化器
type Dataset struct {
	Name    string          `json:"name"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}
