package dto

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

// UpdatePasswordForm is the account-settings password change form.
type UpdatePasswordForm struct {
	OldPassword  string `form:"old_password" json:"old_password" binding:"required"`
	NewPassword  string `form:"new_password" json:"new_password" binding:"required,strongpwd"`
	NewPassword2 string `form:"new_password2" json:"new_password2" binding:"required,eqfield=NewPassword"`
}

// UserInfo is the user view-model.
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
