package main

import (
	"flag"
	"image"
	"log"
	"sync"
	"time"

	"github.com/Grillo-0/Rodomo/ines"
	"github.com/Grillo-0/Rodomo/nes"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

var (
	cart  = flag.String("cart", "", "Path to cart image to load")
	scale = flag.Int("scale", 2, "Window scale factor")
	debug = flag.Bool("debug", false, "If true will emit per frame CPU state while running")
)

const kFPS = 60

var window *sdl.Window
var surface *sdl.Surface

func main() {
	flag.Parse()
	sdl.Main(func() {
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}

			var err error
			window, err = sdl.CreateWindow("rodomo", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
				int32(nes.Width**scale), int32(nes.Height**scale), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			wg.Done()
		})

		img, err := ines.ParseFile(*cart)
		if err != nil {
			log.Fatalf("Can't load rom from path %s: %v", *cart, err)
		}
		wg.Wait()
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		n, err := nes.Init(&nes.Def{
			Prg: img.Prg,
			Chr: img.Chr,
			FrameDone: func(frame *image.NRGBA) {
				sdl.Do(func() {
					draw.NearestNeighbor.Scale(surface, surface.Bounds(), frame, frame.Bounds(), draw.Src, nil)
					window.UpdateSurface()
				})
			},
			Debug: *debug,
		})
		if err != nil {
			log.Fatalf("Can't init NES: %v", err)
		}

		frameTime := time.Second / kFPS
		for {
			start := time.Now()

			if err := n.Frame(); err != nil {
				log.Fatalf("Frame error: %v", err)
			}

			quit := false
			sdl.Do(func() {
				for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
					switch ev := e.(type) {
					case *sdl.QuitEvent:
						quit = true
					case *sdl.WindowEvent:
						if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
							// The old surface is invalid after a resize.
							var err error
							surface, err = window.GetSurface()
							if err != nil {
								log.Fatalf("Can't get window surface: %v", err)
							}
						}
					}
				}
			})
			if quit {
				break
			}

			if elapsed := time.Since(start); elapsed < frameTime {
				time.Sleep(frameTime - elapsed)
			}
		}
	})
}
