package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect casts the center ray of pixel (x, y) and describes the first surface it hits
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	cfg := config.DefaultRenderConfig()
	cfg.Scene = "cornell-box"
	if id := values.Get("scene"); id != "" {
		cfg.Scene = id
	}

	var err error
	if cfg.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sceneObj, err := s.loadScene(cfg.Scene)
	if err != nil {
		return sceneError(err)
	}
	cfg.ApplyScene(sceneObj)
	if err := sceneObj.Preprocess(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	camera := sceneObj.Camera
	x, err := parseIntParam(values, "x", camera.Width()/2, 0, camera.Width()-1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	y, err := parseIntParam(values, "y", camera.Height()/2, 0, camera.Height()-1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, x, y))
}

// inspectPixel traces the unjittered ray through pixel (x, y) of a preprocessed scene
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResponse {
	ray := sceneObj.Camera.CenterRay(x, y)

	var rec material.HitRecord
	// Media scatter at random depths; a fixed sampler keeps inspection repeatable
	if !sceneObj.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(0), &rec) {
		return InspectResponse{Hit: false}
	}

	materialType, properties := materialInfo(rec.Material, rec)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{rec.Point.X, rec.Point.Y, rec.Point.Z},
		Normal:       [3]float64{rec.Normal.X, rec.Normal.Y, rec.Normal.Z},
		Distance:     rec.T * ray.Direction.Length(),
		FrontFace:    rec.FrontFace,
		Properties:   properties,
	}
}

// materialInfo names the material and lists its parameters, evaluating
// textures at the hit point
func materialInfo(mat material.Material, rec material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		setColor(properties, "albedo", m.Albedo.Evaluate(rec.UV, rec.Point))
		return "lambertian", properties

	case *material.Metal:
		setColor(properties, "albedo", m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		setColor(properties, "emission", m.Emit.Evaluate(rec.UV, rec.Point))
		properties["oneSided"] = m.OneSided
		return "light", properties

	case *material.Isotropic:
		setColor(properties, "albedo", m.Albedo.Evaluate(rec.UV, rec.Point))
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// setColor stores a color both as components and as a clamped hex string
func setColor(properties map[string]interface{}, key string, c core.Vec3) {
	properties[key] = [3]float64{c.X, c.Y, c.Z}
	c = c.Clamp(0, 1)
	properties["color"] = fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
