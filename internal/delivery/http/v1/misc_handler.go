package v1

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"go-freelance-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

//go:embed countries.json
var countriesJSON []byte

type country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type MiscHandler struct {
	countries []country
}

func NewMiscHandler(public *gin.RouterGroup) {
	handler := &MiscHandler{}
	if err := json.Unmarshal(countriesJSON, &handler.countries); err != nil {
		panic("invalid embedded countries dataset: " + err.Error())
	}

	miscGroup := public.Group("/misc")
	{
		miscGroup.GET("/countries", handler.GetCountries)
		miscGroup.GET("/language-levels", handler.GetLanguageLevels)
	}
}

// GetCountries godoc
// @Summary      List the countries a profile can reference
// @Tags         misc
// @Produce      json
// @Success      200  {array}  country
// @Router       /misc/countries [get]
func (h *MiscHandler) GetCountries(c *gin.Context) {
	c.JSON(http.StatusOK, h.countries)
}

// GetLanguageLevels godoc
// @Summary      List the accepted spoken-language proficiency levels
// @Tags         misc
// @Produce      json
// @Success      200  {array}  string
// @Router       /misc/language-levels [get]
func (h *MiscHandler) GetLanguageLevels(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ValidLanguageLevels)
}
