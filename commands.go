package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/rdtools/api"
	"github.com/matt-g-everett/rdtools/scene"
	"github.com/matt-g-everett/rdtools/sequence"
	"github.com/matt-g-everett/rdtools/stencil"
	"github.com/matt-g-everett/rdtools/stream"
	"github.com/matt-g-everett/rdtools/volume"
)

type keyframeRecord struct {
	Object   string `yaml:"object"`
	Property string `yaml:"property"`
	Frame    int    `yaml:"frame"`
	Value    bool   `yaml:"value"`
}

// loadScene imports the configured meshes and fixes their frame order.
func (a *app) loadScene() (*scene.Scene, *sequence.Assignment, error) {
	s := scene.NewScene()
	if _, err := s.Load(a.Config.Input.Pattern, a.Config.Input.Material); err != nil {
		return nil, nil, err
	}
	if a.Config.Input.Color != "" {
		if err := s.Material(a.Config.Input.Material).SetDiffuseHex(a.Config.Input.Color); err != nil {
			return nil, nil, err
		}
	}
	assignment, err := sequence.NewAssignment(s.Objects())
	if err != nil {
		return nil, nil, err
	}
	a.Log.WithFields(logrus.Fields{
		"pattern": a.Config.Input.Pattern,
		"meshes":  assignment.Len(),
	}).Info("imported meshes")
	return s, assignment, nil
}

func (a *app) loadAssignment() (*sequence.Assignment, error) {
	_, assignment, err := a.loadScene()
	return assignment, err
}

// animate drives the visibility of assignment from tl in the configured
// mode. The returned function undoes any handler registration.
func (a *app) animate(tl *sequence.Timeline, assignment *sequence.Assignment) (detach func(), err error) {
	switch a.Config.Sequence.Mode {
	case "keyframe":
		scheme, err := sequence.ParseScheme(a.Config.Sequence.Scheme)
		if err != nil {
			return nil, err
		}
		if err := sequence.KeyframeVisibility(tl, assignment, scheme); err != nil {
			return nil, err
		}
		return func() {}, nil
	case "follow":
		return sequence.Follow(tl, assignment)
	}
	return nil, fmt.Errorf("unknown sequence mode %q", a.Config.Sequence.Mode)
}

func (a *app) keyframeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "keyframe",
		Short: "Write visibility keyframes for the imported mesh sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := sequence.ParseScheme(a.Config.Sequence.Scheme)
			if err != nil {
				return err
			}
			assignment, err := a.loadAssignment()
			if err != nil {
				return a.emptyInput(err)
			}

			tl := sequence.NewTimeline(0, 0)
			if err := sequence.KeyframeVisibility(tl, assignment, scheme); err != nil {
				return a.emptyInput(err)
			}

			keys := sequence.Export(tl, assignment)
			records := make([]keyframeRecord, len(keys))
			for i, k := range keys {
				records[i] = keyframeRecord{k.Object.Name(), k.Property.String(), k.Frame, k.Value}
			}
			b, err := yaml.Marshal(records)
			if err != nil {
				return err
			}

			start, end := tl.Range()
			a.Log.WithFields(logrus.Fields{
				"scheme":    scheme,
				"start":     start,
				"end":       end,
				"keyframes": len(keys),
			}).Info("keyframed visibility")

			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write keyframes to this file instead of stdout.")
	return cmd
}

func (a *app) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the mesh sequence, publishing each frame's visibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignment, err := a.loadAssignment()
			if err != nil {
				return a.emptyInput(err)
			}

			tl := sequence.NewTimeline(0, 0)
			detach, err := a.animate(tl, assignment)
			if err != nil {
				return a.emptyInput(err)
			}
			defer detach()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if a.Config.Mqtt.URL != "" {
				client, err := a.connect()
				if err != nil {
					return err
				}
				defer client.Disconnect(250)

				s := stream.NewStreamer(client, a.Config.Mqtt.Topics.Frame, a.Config.Mqtt.Qos, assignment, a.Log)
				defer s.Attach(tl)()
			}

			if a.Config.API.Listen != "" {
				srv := api.NewApi(a.Config.Render.OutDir, a.Log)
				defer srv.Attach(tl, assignment)()
				go func() {
					if err := srv.Serve(ctx, a.Config.API.Listen); err != nil {
						a.Log.WithError(err).Error("api stopped")
					}
				}()
			}

			p := stream.NewPlayer(tl, a.Config.Sequence.FrameRate, a.Config.Sequence.Loops, a.Log)
			if err := p.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
}

func (a *app) connect() (mqtt.Client, error) {
	mqtt.ERROR = a.Log.WithField("component", "mqtt")

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			a.Log.WithField("broker", a.Config.Mqtt.URL).Info("Connected")
		})
	client := mqtt.NewClient(options)

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

var laplacianNames = map[int]string{1: "laplacian", 2: "bilaplacian", 3: "trilaplacian"}

func (a *app) stencilCmd() *cobra.Command {
	var dims int
	var sigma float64
	var style string
	var isotropic bool
	cmd := &cobra.Command{
		Use:   "stencil",
		Short: "Print Laplacian power and Gaussian stencils as array literals",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.Config.Stencil
			if cmd.Flags().Changed("dims") {
				c.Dims = dims
			}
			if cmd.Flags().Changed("sigma") {
				c.Sigma = sigma
			}
			if cmd.Flags().Changed("style") {
				c.Style = style
			}
			if cmd.Flags().Changed("isotropic") {
				c.Isotropic = isotropic
			}
			st, err := stencil.ParseStyle(c.Style)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, n := range c.Powers {
				name, found := laplacianNames[n]
				if !found {
					name = fmt.Sprintf("laplacian%d", n)
				}
				name = fmt.Sprintf("%s%dD", name, c.Dims)

				var s string
				if c.Isotropic {
					k, err := stencil.IsotropicPower(c.Dims, n)
					if err != nil {
						return err
					}
					s, err = stencil.FormatStencil(name, k, st)
					if err != nil {
						return err
					}
				} else {
					k, err := stencil.LaplacianPower(c.Dims, n)
					if err != nil {
						return err
					}
					s, err = stencil.Format(name, k, st)
					if err != nil {
						return err
					}
				}
				fmt.Fprintln(w, s)
			}

			name := fmt.Sprintf("gaussian%dD", c.Dims)
			var s string
			if c.Isotropic {
				g, err := stencil.IntegerGaussian(c.Dims)
				if err != nil {
					return err
				}
				s, err = stencil.FormatStencil(name, g, st)
				if err != nil {
					return err
				}
			} else {
				g, err := stencil.Gaussian(c.Dims, c.Sigma, c.Truncate)
				if err != nil {
					return err
				}
				s, err = stencil.Format(name, g, st)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(w, s)
			return nil
		},
	}
	cmd.Flags().IntVar(&dims, "dims", 2, "Number of dimensions (overrides config).")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "Gaussian standard deviation (overrides config).")
	cmd.Flags().StringVar(&style, "style", "go", "Output style: go, c or text (overrides config).")
	cmd.Flags().BoolVar(&isotropic, "isotropic", false, "Print the isotropic integer stencils with their divisors (overrides config).")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render every frame of the mesh sequence to numbered PNG images",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.Config.Preview
			s, assignment, err := a.loadScene()
			if err != nil {
				return a.emptyInput(err)
			}

			tl := sequence.NewTimeline(0, 0)
			detach, err := a.animate(tl, assignment)
			if err != nil {
				return a.emptyInput(err)
			}
			defer detach()

			r := scene.NewRenderer(c.Width, c.Height)
			if r.Background, err = colorful.Hex(c.Background); err != nil {
				return err
			}
			w, err := scene.NewFrameWriter(r, s, c.OutDir, c.NameFormat, a.Log)
			if err != nil {
				return err
			}
			defer w.Attach(tl)()

			start, end := tl.Range()
			for f := start; f <= end; f++ {
				tl.SetFrame(f)
			}
			if err := w.Err(); err != nil {
				return err
			}
			a.Log.WithFields(logrus.Fields{
				"frames": len(w.Written()),
				"outDir": c.OutDir,
			}).Info("previewed")
			return nil
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Contour volume snapshots and render them to numbered PNG frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.Config.Render
			background, err := colorful.Hex(c.Background)
			if err != nil {
				return err
			}

			r := volume.NewRenderer(c.Iso)
			r.Scale = c.Scale
			r.Cells = c.Cells
			r.ShowOutline = !c.HideOutline
			r.Background = background

			written, err := r.RenderSequence(c.Pattern, c.OutDir, c.NameFormat, a.Log)
			if err != nil {
				return a.emptyInput(err)
			}
			a.Log.WithFields(logrus.Fields{
				"frames": len(written),
				"outDir": c.OutDir,
			}).Info("rendered")
			return nil
		},
	}
}
