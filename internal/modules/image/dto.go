package image

type ListImagesQuery struct {
	Page    int `form:"page,default=1" binding:"gte=1"`
	PerPage int `form:"per_page,default=20" binding:"gte=1,lte=100"`
}
