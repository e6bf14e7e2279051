package achievements

import "github.com/vytor/theoryflash/internal/models"

// LevelInfo derives level progression from total XP.
func (c *Catalog) LevelInfo(totalXP int) models.LevelInfo {
	info := models.LevelInfo{Current: c.Levels[0], TotalXP: totalXP}
	for i, lvl := range c.Levels {
		if lvl.MinXP <= totalXP {
			info.Current = lvl
			continue
		}
		next := c.Levels[i]
		info.Next = &next
		break
	}

	if info.Next == nil {
		info.ProgressPercent = 100
		return info
	}
	info.XPToNextLevel = info.Next.MinXP - totalXP
	span := info.Next.MinXP - info.Current.MinXP
	if span > 0 && totalXP >= info.Current.MinXP {
		info.ProgressPercent = (totalXP - info.Current.MinXP) * 100 / span
	}
	return info
}
