package main

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jamespanton93/terratools/core"
)

// MeshData is the wire form of a built mesh, shaped for a browser-side
// viewer: one canonical layer of unit-sphere vertices plus the layer radii.
type MeshData struct {
	Type      string       `json:"type"`
	Level     int          `json:"level"`
	Vertices  [][3]float64 `json:"vertices"`
	Indices   []int32      `json:"indices"`
	Radii     []float64    `json:"radii"`
	NodeCount int          `json:"nodeCount"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local viewer only
	},
}

type meshServer struct {
	mu      sync.RWMutex
	mesh    *core.Mesh
	clients map[*websocket.Conn]*sync.Mutex
}

func startServer(mesh *core.Mesh, port int) {
	s := &meshServer{
		mesh:    mesh,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}

	http.HandleFunc("/ws", s.handleWebSocket)

	fmt.Printf("Mesh server starting on http://localhost:%d\n", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}

func (s *meshServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMutex
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	s.sendMeshData(conn)

	// Clients may request a rebuild at a different resolution.
	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("WebSocket read error:", err)
			break
		}

		if lvl, ok := msg["level"].(float64); ok {
			if err := s.rebuild(int(lvl)); err != nil {
				log.Println("Rebuild rejected:", err)
				continue
			}
			s.broadcastMeshData()
		}
	}
}

func (s *meshServer) rebuild(level int) error {
	s.mu.RLock()
	old := s.mesh
	s.mu.RUnlock()

	inner := old.Radius(0)
	outer := old.Radius(old.LayerCount() - 1)
	fmt.Printf("REBUILD: level %d -> %d\n", old.Level(), level)

	mesh, err := core.BuildMesh(level, inner, outer, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mesh = mesh
	s.mu.Unlock()
	return nil
}

func (s *meshServer) sendMeshData(conn *websocket.Conn) {
	s.mu.RLock()
	mutex, ok := s.clients[conn]
	s.mu.RUnlock()
	if !ok {
		return
	}

	meshData := s.createMeshData()
	mutex.Lock()
	if err := conn.WriteJSON(meshData); err != nil {
		log.Println("WebSocket write error:", err)
	}
	mutex.Unlock()
}

func (s *meshServer) broadcastMeshData() {
	meshData := s.createMeshData()

	s.mu.RLock()
	var failed []*websocket.Conn
	for client, mutex := range s.clients {
		mutex.Lock()
		err := client.WriteJSON(meshData)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			failed = append(failed, client)
		}
	}
	s.mu.RUnlock()

	if len(failed) > 0 {
		s.mu.Lock()
		for _, client := range failed {
			delete(s.clients, client)
		}
		s.mu.Unlock()
	}
}

func (s *meshServer) createMeshData() MeshData {
	s.mu.RLock()
	mesh := s.mesh
	s.mu.RUnlock()

	vertices := make([][3]float64, mesh.VertexCount())
	for v := range vertices {
		p := mesh.NodePosition(v) // layer 0; lateral positions repeat radially
		vertices[v] = [3]float64{p.X(), p.Y(), p.Z()}
	}

	triangles := mesh.Triangles()
	indices := make([]int32, 0, 3*len(triangles))
	for _, tri := range triangles {
		indices = append(indices, tri[0], tri[1], tri[2])
	}

	return MeshData{
		Type:      "mesh",
		Level:     mesh.Level(),
		Vertices:  vertices,
		Indices:   indices,
		Radii:     mesh.Radii(),
		NodeCount: mesh.NodeCount(),
	}
}
