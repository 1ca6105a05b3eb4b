package shadows

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/gui"
)

// Panel folder titles.
const (
	FolderAmbient     = "Ambient Light"
	FolderDirectional = "Directional Light"
	FolderSpot        = "Spot Light"
)

// HelperControlName is the helper toggle inside each light folder.
const HelperControlName = "Light Camera Helper"

const panelStep = 0.001

// numberControl describes one slider bound to a float property.
type numberControl struct {
	target   common.FloatProperties
	path     string
	name     string
	min, max float64
}

func (a *App) buildPanel() error {
	w, h := a.viewport()
	a.Panel = gui.New(
		gui.WithTitle("Controls"),
		gui.WithWidth(300),
		gui.WithViewport(w, h),
	)

	ambient := a.Panel.AddFolder(FolderAmbient)
	if err := addNumbers(ambient, []numberControl{
		{a.Ambient, "intensity", "Ambient Light Intensity", 0, 3},
	}); err != nil {
		return err
	}

	directional := a.Panel.AddFolder(FolderDirectional)
	if err := addNumbers(directional, lightControls(a.Directional, "Directional Light", 3)); err != nil {
		return err
	}
	toggle, err := directional.AddBool(a.DirectionalHelper, "visible")
	if err != nil {
		return fmt.Errorf("%s: %w", FolderDirectional, err)
	}
	toggle.SetName(HelperControlName)

	spot := a.Panel.AddFolder(FolderSpot)
	if err := addNumbers(spot, lightControls(a.Spot, "Spot Light", 10)); err != nil {
		return err
	}
	toggle, err = spot.AddBool(a.SpotHelper, "visible")
	if err != nil {
		return fmt.Errorf("%s: %w", FolderSpot, err)
	}
	toggle.SetName(HelperControlName)

	if err := addNumbers(a.Panel, []numberControl{
		{a.Material, "metalness", "metalness", 0, 1},
		{a.Material, "roughness", "roughness", 0, 1},
	}); err != nil {
		return err
	}

	ambient.Close()
	directional.Close()
	spot.Close()
	return nil
}

// lightControls returns intensity and position sliders for a light, labelled with prefix.
func lightControls(target common.FloatProperties, prefix string, maxIntensity float64) []numberControl {
	return []numberControl{
		{target, "intensity", prefix + " Intensity", 0, maxIntensity},
		{target, "position.x", prefix + " X", -5, 5},
		{target, "position.y", prefix + " Y", -5, 5},
		{target, "position.z", prefix + " Z", -5, 5},
	}
}

func addNumbers(f gui.Folder, controls []numberControl) error {
	for _, c := range controls {
		ctrl, err := f.Add(c.target, c.path)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Title(), err)
		}
		ctrl.Min(c.min).Max(c.max).Step(panelStep).SetName(c.name)
	}
	return nil
}
