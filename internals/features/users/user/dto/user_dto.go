// file: internals/features/users/user/dto/user_dto.go
package dto

type UpdateMeRequest struct {
	UserName string `json:"user_name" validate:"required,min=2,max=100"`
}
