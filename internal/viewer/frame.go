package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/logger"
)

// Frame renders one frame at now:
//   - integrate the camera over the time since the last frame
//   - move the sun, so the light position is current before any draw
//   - draw the sun with the frame uniforms only
//   - draw everything else with the queued uniforms followed by the frame uniforms
//   - drop the queue
func (v *Viewer) Frame(now time.Time) {
	var dt time.Duration
	if !v.lastFrame.IsZero() {
		dt = now.Sub(v.lastFrame)
	}
	v.lastFrame = now

	v.camera.Update(dt)

	t := renderer.Transforms{View: renderer.Mat(v.camera.ViewMatrix())}
	if v.projection != nil {
		t.Projection = v.projection
		v.projection = nil
	}

	sun := v.scene.Sun
	sun.Advance(now)
	base := []shader.Uniform{
		shader.LightPos{Pos: sun.Position()},
		shader.EyePos{Pos: v.camera.Position},
	}

	v.renderer.Clear()
	v.renderer.Draw([]renderer.Pass{sun}, t, base)

	uniforms := make([]shader.Uniform, 0, len(v.pending)+len(base))
	uniforms = append(uniforms, v.pending...)
	uniforms = append(uniforms, base...)
	v.renderer.Draw(v.scene.Passes(), t, uniforms)
	v.pending = v.pending[:0]

	if v.screenshot {
		v.screenshot = false
		w, h := v.renderer.WindowDimensions()
		if _, err := v.shots.Capture(v.renderer.GL(), w, h); err != nil {
			logger.Error("screenshot failed", zap.Error(err))
		}
	}

	if fps, ok := v.renderer.EndFrame(now); ok {
		logger.Info("fps", zap.Int("fps", fps), zap.Any("sun", sun.Position()))
		if v.config.Debug.ShowFPS {
			v.window.SetTitle(fmt.Sprintf("%s - %d FPS", v.config.Window.Title, fps))
		}
	}
}
