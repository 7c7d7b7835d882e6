package model

import "time"

// Subtopic 单个评分项（Unterkapitel）
type Subtopic struct {
	Title string `json:"title" validate:"notblank"`
	Hint  string `json:"hint"`
}

// Category 顶层要素（Wesenselement）
type Category struct {
	Name      string     `json:"name" validate:"notblank"`
	CoreGoal  string     `json:"coreGoal" validate:"notblank"`
	Subtopics []Subtopic `json:"subtopics" validate:"required,min=1,dive"`
}

// Catalog 只读、有序；决定整个会话的遍历顺序
type Catalog struct {
	Categories []Category `json:"categories" validate:"required,min=1,dive"`
	Source     string     `json:"source"`
	LoadedAt   time.Time  `json:"loadedAt"`
}

func (c *Catalog) SubtopicCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Subtopics)
	}
	return n
}

func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}
