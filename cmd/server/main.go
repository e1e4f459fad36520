package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/coder/websocket"

	"github.com/halstein/dungeon-forge/internal/dungeon"
	"github.com/halstein/dungeon-forge/internal/grid"
	"github.com/halstein/dungeon-forge/internal/protocol"
	"github.com/halstein/dungeon-forge/internal/web/views"
	"github.com/halstein/dungeon-forge/internal/ws"
)

type serverConfig struct {
	Port            string  `env:"APP_PORT" envDefault:"8080"`
	Seed            int64   `env:"DUNGEON_SEED" envDefault:"1"`
	GridWidth       int     `env:"DUNGEON_GRID_WIDTH" envDefault:"48"`
	GridHeight      int     `env:"DUNGEON_GRID_HEIGHT" envDefault:"3"`
	GridDepth       int     `env:"DUNGEON_GRID_DEPTH" envDefault:"48"`
	SideRoomChance  float64 `env:"DUNGEON_SIDE_ROOM_CHANCE" envDefault:"0.6"`
	MaxSideRooms    int     `env:"DUNGEON_MAX_SIDE_ROOMS" envDefault:"24"`
	ExtraEdgeChance float64 `env:"DUNGEON_EXTRA_EDGE_CHANCE" envDefault:"0.2"`
}

// catalog is the dev asset library: footprints for the measurer and a
// recording placer so generation runs without a real scene host.
type catalog struct {
	footprints map[dungeon.AssetRef]grid.Point
}

type placedAsset struct {
	Asset    dungeon.AssetRef
	Position grid.Point
	Style    dungeon.StyleRef
}

func (c *catalog) MeasureFootprint(asset dungeon.AssetRef) grid.Point {
	return c.footprints[asset]
}

func (c *catalog) PlaceAsset(asset dungeon.AssetRef, position grid.Point) dungeon.AssetInstance {
	return &placedAsset{Asset: asset, Position: position}
}

func (c *catalog) ApplyVisualStyle(instance dungeon.AssetInstance, style dungeon.StyleRef) {
	if placed, ok := instance.(*placedAsset); ok {
		placed.Style = style
	}
}

func devCatalog() *catalog {
	return &catalog{footprints: map[dungeon.AssetRef]grid.Point{
		"great-hall": {X: 7, Y: 1, Z: 7},
		"barracks":   {X: 4, Y: 1, Z: 4},
		"cell":       {X: 3, Y: 1, Z: 3},
		"vault":      {X: 4, Y: 1, Z: 6},
		"corridor":   {X: 1, Y: 1, Z: 1},
	}}
}

type server struct {
	mu        sync.Mutex
	generator *dungeon.Generator
	config    dungeon.Config
	snapshot  protocol.Snapshot
	hub       *ws.Hub
}

// regenerate applies any request overrides, runs generation and stores the
// new snapshot. The stored config keeps the overrides so later runs build
// on them.
func (s *server) regenerate(req protocol.RequestRegenerate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Seed != nil {
		s.config.Seed = *req.Seed
	} else {
		s.config.Seed++
	}
	if req.SideRoomChance != nil {
		s.config.SideRoomChance = *req.SideRoomChance
	}
	if req.MaxSideRooms != nil {
		s.config.MaxSideRooms = *req.MaxSideRooms
	}
	if req.ExtraEdgeChance != nil {
		s.config.ExtraEdgeChance = *req.ExtraEdgeChance
	}

	result, err := s.generator.Generate(s.config)
	if err != nil {
		return err
	}
	s.snapshot = protocol.SnapshotFromResult(s.config.Seed, result)
	log.Printf("generated dungeon: seed=%d rooms=%d corridors=%d regions=%d",
		s.config.Seed, len(s.snapshot.Rooms), len(s.snapshot.Paths), s.snapshot.RegionsCount)
	return nil
}

func (s *server) currentSnapshot() protocol.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	s.hub.Add(conn)

	go func(c *websocket.Conn) {
		defer s.hub.Remove(c)
		defer c.Close(websocket.StatusNormalClosure, "")
		for {
			_, data, err := c.Read(context.Background())
			if err != nil {
				return
			}
			var envelope protocol.IntentEnvelope
			if err := json.Unmarshal(data, &envelope); err != nil {
				continue
			}
			switch envelope.Type {
			case "RequestRegenerate":
				var req protocol.RequestRegenerate
				if len(envelope.Payload) > 0 {
					if err := json.Unmarshal(envelope.Payload, &req); err != nil {
						continue
					}
				}
				if err := s.regenerate(req); err != nil {
					log.Printf("regenerate failed: %v", err)
					continue
				}
				s.hub.BroadcastPatch("DungeonRegenerated", protocol.DungeonRegenerated{
					Snapshot: s.currentSnapshot(),
				})
			default:
			}
		}
	}(conn)
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := views.IndexPage(s.currentSnapshot()).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func main() {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	assets := devCatalog()
	srv := &server{
		generator: dungeon.NewGenerator(assets, assets, assets),
		hub:       ws.NewHub(),
		config: dungeon.Config{
			GridSize:        grid.Point{X: cfg.GridWidth, Y: cfg.GridHeight, Z: cfg.GridDepth},
			Seed:            cfg.Seed,
			MainRoomAsset:   "great-hall",
			MainRoomStyle:   "dressed-stone",
			SideRoomAssets:  []dungeon.AssetRef{"barracks", "cell", "vault"},
			SideRoomStyle:   "rough-stone",
			SideRoomChance:  cfg.SideRoomChance,
			MaxSideRooms:    cfg.MaxSideRooms,
			CorridorAssets:  []dungeon.AssetRef{"corridor"},
			CorridorStyle:   "rough-stone",
			ExtraEdgeChance: cfg.ExtraEdgeChance,
		},
	}
	if err := srv.regenerate(protocol.RequestRegenerate{Seed: &cfg.Seed}); err != nil {
		log.Fatalf("initial generation: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/stream", srv.handleStream)
	mux.HandleFunc("/", srv.handleIndex)

	log.Printf("listening on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
