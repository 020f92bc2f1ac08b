package dto

import "ihome/internal/domains/area/model"

type AreaResponse struct {
	ID   int    `json:"aid"`
	Name string `json:"aname"`
}

func (r *AreaResponse) FromModel(area model.Area) {
	r.ID = area.ID
	r.Name = area.Name
}

type GetAreasResponse []AreaResponse

func (r *GetAreasResponse) FromModels(areas []model.Area) {
	res := make(GetAreasResponse, len(areas))
	for i, area := range areas {
		res[i].FromModel(area)
	}

	*r = res
}
