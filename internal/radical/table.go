// Package radical carries the static character-to-decomposition table the
// fuzzy-evasion layer uses to catch visually split characters (writing 她
// as 女也, for example). The table is a curated data asset: a character may
// have several decompositions, and characters without an entry simply never
// participate in radical expansion.
package radical

// Table maps a Chinese character to its radical-decomposition keys. Each
// key is the character's components written out as a string of standalone
// characters, in visual order.
type Table map[rune][]string

// Default returns the built-in decomposition table.
func Default() Table {
	return defaultTable
}

var defaultTable = Table{
	'他': {"亻也"},
	'她': {"女也"},
	'你': {"亻尔"},
	'们': {"亻门"},
	'仁': {"亻二"},
	'什': {"亻十"},
	'休': {"亻木"},
	'体': {"亻本"},
	'位': {"亻立"},
	'住': {"亻主"},
	'信': {"亻言"},
	'做': {"亻故"},
	'停': {"亻亭"},
	'凭': {"任几"},
	'好': {"女子"},
	'如': {"女口"},
	'妈': {"女马"},
	'奶': {"女乃"},
	'安': {"宀女"},
	'字': {"宀子"},
	'明': {"日月"},
	'朋': {"月月"},
	'胡': {"古月"},
	'林': {"木木"},
	'森': {"木木木"},
	'李': {"木子"},
	'杜': {"木土"},
	'村': {"木寸"},
	'校': {"木交"},
	'呆': {"口木"},
	'吧': {"口巴"},
	'吗': {"口马"},
	'唱': {"口昌"},
	'另': {"口力"},
	'加': {"力口"},
	'男': {"田力"},
	'界': {"田介"},
	'思': {"田心"},
	'想': {"相心", "木目心"},
	'汉': {"氵又"},
	'江': {"氵工"},
	'河': {"氵可"},
	'海': {"氵每"},
	'湖': {"氵胡"},
	'法': {"氵去"},
	'的': {"白勺"},
	'和': {"禾口"},
	'科': {"禾斗"},
	'程': {"禾呈"},
	'类': {"米大"},
	'粉': {"米分"},
	'红': {"纟工"},
	'组': {"纟且"},
	'给': {"纟合"},
	'论': {"讠仑"},
	'课': {"讠果"},
	'说': {"讠兑"},
	'话': {"讠舌"},
	'语': {"讠吾"},
	'谢': {"讠射", "言射"},
	'政': {"正攵"},
	'故': {"古攵"},
	'教': {"孝攵"},
	'新': {"亲斤"},
	'坡': {"土皮"},
	'际': {"阝示"},
	'院': {"阝完"},
	'联': {"耳关"},
	'独': {"犭虫"},
	'拓': {"扌石"},
	'预': {"予页"},
}
