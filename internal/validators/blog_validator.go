package validators

type BlogCreateRequest struct {
	Title           string   `json:"title" validate:"required,min=5,max=200"`
	Slug            string   `json:"slug" validate:"omitempty,slug,max=120"`
	Excerpt         string   `json:"excerpt" validate:"omitempty,max=500"`
	Content         string   `json:"content" validate:"required"`
	CoverImage      string   `json:"cover_image" validate:"omitempty,url"`
	Tags            []string `json:"tags" validate:"omitempty,max=15,dive,max=40"`
	MetaTitle       string   `json:"meta_title" validate:"omitempty,max=70"`
	MetaDescription string   `json:"meta_description" validate:"omitempty,max=170"`
}

type BlogUpdateRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Slug            *string  `json:"slug" validate:"omitempty,slug,max=120"`
	Excerpt         *string  `json:"excerpt" validate:"omitempty,max=500"`
	Content         *string  `json:"content" validate:"omitempty"`
	Status          *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	CoverImage      *string  `json:"cover_image" validate:"omitempty,url"`
	Tags            []string `json:"tags" validate:"omitempty,max=15,dive,max=40"`
	MetaTitle       *string  `json:"meta_title" validate:"omitempty,max=70"`
	MetaDescription *string  `json:"meta_description" validate:"omitempty,max=170"`
}

func ValidateBlogCreate(req *BlogCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateBlogUpdate(req *BlogUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}
