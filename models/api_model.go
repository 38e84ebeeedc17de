package models

import "time"

type GenerateReq struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

type GenerateResp struct {
	Diagram  *Diagram `json:"diagram"`
	Fallback bool     `json:"fallback"`
}

type ChatReq struct {
	Message string `json:"message"`
}

type ChatResp struct {
	Answer   string   `json:"answer"`
	Diagram  *Diagram `json:"diagram"`
	Fallback bool     `json:"fallback"`
}

type AddNodeReq struct {
	Label string `json:"label"`
}

type UpdateNodeReq struct {
	Label string `json:"label"`
}

type EdgeReq struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type LayoutReq struct {
	Direction string `json:"direction"`
}

type ModelConfigReq struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

type ShareReq struct {
	Format string `json:"format"`
}

type ShareResp struct {
	URL     string    `json:"url"`
	FileKey string    `json:"file_key"`
	Format  string    `json:"format"`
	Expires time.Time `json:"expires"`
}
