package dashboard

type Query struct {
	Location string `form:"location" binding:"max=200"`
}
