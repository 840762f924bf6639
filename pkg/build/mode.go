package build

// BuildMode 建造模式，决定提交选区时执行的批量操作
type BuildMode int

const (
	// ModePlaceTile 铺设当前地块类型（默认模式）
	ModePlaceTile BuildMode = iota
	// ModePlaceThing 放置物件（墙）
	ModePlaceThing
	// ModeRemoveTile 删除地块（设为空地块）
	ModeRemoveTile
	// ModeRemoveThing 删除物件
	ModeRemoveThing
	// ModeInteract 交互模式（保留，提交时不做任何事）
	ModeInteract
)

// String 返回模式名称，与 UI 指令名一致
func (m BuildMode) String() string {
	switch m {
	case ModePlaceTile:
		return "Tile"
	case ModePlaceThing:
		return "Thing"
	case ModeRemoveTile:
		return "DeleteTile"
	case ModeRemoveThing:
		return "DeleteThing"
	case ModeInteract:
		return "Interact"
	default:
		return "Unknown"
	}
}

// Valid 是否为已定义的模式
func (m BuildMode) Valid() bool {
	return m >= ModePlaceTile && m <= ModeInteract
}

// ModeFromCommand 将 UI 指令名映射为建造模式
// 只识别 "Tile"、"DeleteTile"、"Thing"、"DeleteThing"（区分大小写），
// Interact 没有对应的指令名
func ModeFromCommand(name string) (BuildMode, bool) {
	switch name {
	case "Tile":
		return ModePlaceTile, true
	case "DeleteTile":
		return ModeRemoveTile, true
	case "Thing":
		return ModePlaceThing, true
	case "DeleteThing":
		return ModeRemoveThing, true
	}
	return ModePlaceTile, false
}

// ParseBuildMode 解析 String() 输出的模式名（包含 Interact），用于存档恢复
func ParseBuildMode(name string) (BuildMode, bool) {
	for m := ModePlaceTile; m <= ModeInteract; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return ModePlaceTile, false
}
