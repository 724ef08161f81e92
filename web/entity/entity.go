// Package entity defines the JSON envelope and the HTML form payloads of the shop.
package entity

// Msg is the JSON body returned to AJAX callers.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required" msg:"Tienes que poner un nombre de usuario"`
	Password string `form:"password" binding:"required" msg:"Tienes que poner una contraseña"`
}

// RegisterForm is the sign-up form. AdminToken is read but never used to grant privileges.
type RegisterForm struct {
	Username   string `form:"username" binding:"required,notblank,max=100" msg:"Tienes que poner un nombre de usuario"`
	Password   string `form:"password" binding:"required" msg:"Tienes que poner una contraseña"`
	Name       string `form:"nombre" binding:"required,notblank,max=200" msg:"Tienes que poner un nombre completo"`
	Email      string `form:"email" binding:"required,email,max=200" msg:"Tienes que poner un email"`
	AdminToken string `form:"admin_token"`
}

type ChangePasswordForm struct {
	OldPassword string `form:"antigua_password" binding:"required" msg:"Tienes que poner tu contraseña actual"`
	Password    string `form:"password" binding:"required" msg:"Tienes que poner una contraseña nueva"`
}

type CategoryForm struct {
	Name string `form:"nombre" binding:"required,notblank,max=100" msg:"Tienes que poner un nombre"`
}

// ArticleForm keeps numbers as submitted so the form can be re-rendered unchanged on error.
type ArticleForm struct {
	Name        string `form:"nombre" binding:"required,notblank,max=100" msg:"Tienes que poner un nombre"`
	Price       string `form:"precio" binding:"required,price" msg:"Tienes que poner un precio"`
	Tax         string `form:"iva" binding:"required,number" msg:"Tienes que poner un IVA"`
	Description string `form:"descripcion" binding:"max=255"`
	Stock       string `form:"stock" binding:"required,number" msg:"Tienes que poner una cantidad de stock"`
	CategoryId  string `form:"CategoriaId" binding:"omitempty,number"`
}

type CartForm struct {
	Id       int `form:"id" json:"id" binding:"required,gt=0" msg:"Artículo no válido"`
	Quantity int `form:"cantidad" json:"cantidad" binding:"required,min=1" msg:"Tienes que introducir el dato"`
}

// DeleteForm is the yes/no confirmation. Only the pressed button is submitted.
type DeleteForm struct {
	Yes string `form:"si"`
	No  string `form:"no"`
}

func (f *DeleteForm) Affirmative() bool {
	return f.Yes != "" && f.No == ""
}
