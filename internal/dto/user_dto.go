package dto

// RegisterForm is the admin-only new user form.
type RegisterForm struct {
	Username  string `form:"username" json:"username" binding:"required,username"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Password  string `form:"password" json:"password" binding:"required,strongpwd"`
	Password2 string `form:"password2" json:"password2" binding:"required,eqfield=Password"`
	Role      string `form:"role" json:"role"`
}

// EditRoleForm is the admin-only role change form.
type EditRoleForm struct {
	Role string `form:"role" json:"role" binding:"required"`
}
