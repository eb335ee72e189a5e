package models

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

type CreateSubCategoryRequest struct {
	Name        string `json:"name" form:"name"`
	CategoryID  int    `json:"category_id" form:"category_id"`
	Description string `json:"description" form:"description"`
}

type UpdateSubCategoryRequest struct {
	Name        *string `json:"name" form:"name"`
	CategoryID  *int    `json:"category_id" form:"category_id"`
	Description *string `json:"description" form:"description"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

type CreateProductRequest struct {
	Title         string
	Description   string
	SubCategoryID int
	Variants      []Variant
}

type UpdateProductRequest struct {
	Title         *string
	Description   *string
	SubCategoryID *int
	Variants      []Variant
	IsActive      *bool
	ReplaceImages bool
}

// StagedImage is an upload the transport layer already pushed to the object
// store before the service ran. On failure the service deletes them again.
type StagedImage struct {
	PublicID     string
	URL          string
	OriginalName string
}
