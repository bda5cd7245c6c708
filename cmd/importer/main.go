package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RyanDaCoder/sdsu-search/config"
	"github.com/RyanDaCoder/sdsu-search/internal/ingest"
	"github.com/RyanDaCoder/sdsu-search/internal/model"
	"github.com/RyanDaCoder/sdsu-search/pkg/database"
	applogger "github.com/RyanDaCoder/sdsu-search/pkg/logger"
	"github.com/RyanDaCoder/sdsu-search/pkg/redis"
)

// 课程目录导入工具。
// 用法：
//   importer -file catalog.csv [-mapping maps.json] [-dry-run]
//   importer -file ge.csv -requirements [-mapping maps.json] [-dry-run]
// 映射配置 JSON 见 ingest.Mapping：候选表头、上课时间装配模式、枚举取值映射。

func main() {
	var (
		file         = flag.String("file", "", "CSV 文件路径（必填）")
		mappingPath  = flag.String("mapping", "", "映射配置 JSON 路径（可选）")
		requirements = flag.Bool("requirements", false, "导入 (subject,number,code) 通识要求关联而非课程目录")
		dryRun       = flag.Bool("dry-run", false, "只校验不落盘")
		cfgPath      = flag.String("config", "", "配置文件路径（可选）")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mapping, err := loadMapping(*mappingPath)
	if err != nil {
		logger.Fatal("加载映射配置失败", zap.Error(err))
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("打开 CSV 失败", zap.Error(err))
	}
	defer f.Close()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	importer := ingest.NewImporter(db, logger)

	if *requirements {
		importRequirements(f, mapping, importer, db, cfg, logger, *dryRun)
		return
	}

	rows, err := ingest.ParseCSV(f, mapping)
	if err != nil {
		logger.Fatal("解析 CSV 失败", zap.Error(err))
	}

	cat, report := ingest.BuildCatalog(rows, mapping.Values())
	for _, w := range report.Warnings {
		logger.Warn("导入警告", zap.String("detail", w))
	}
	logger.Info("目录聚合完成",
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped),
		zap.Int("terms", report.Terms),
		zap.Int("courses", report.Courses),
		zap.Int("sections", report.Sections),
		zap.Int("meetings", report.Meetings),
	)

	if err := importer.Apply(context.Background(), cat, *dryRun); err != nil {
		logger.Fatal("导入失败", zap.Error(err))
	}

	// 导入成功后失效通识要求缓存（干跑无需失效）
	if !*dryRun {
		codes := make([]string, 0, len(cat.Terms))
		for code := range cat.Terms {
			codes = append(codes, code)
		}
		invalidateRequirementCaches(cfg, logger, codes)
	}

	logger.Info("导入完成", zap.Bool("dry_run", *dryRun))
}

func importRequirements(f *os.File, mapping ingest.Mapping, importer *ingest.Importer, db *gorm.DB, cfg *config.Config, logger *zap.Logger, dryRun bool) {
	rows, err := ingest.ParseRequirementsCSV(f, mapping)
	if err != nil {
		logger.Fatal("解析要求关联 CSV 失败", zap.Error(err))
	}

	report, err := importer.ApplyRequirementLinks(context.Background(), rows, dryRun)
	if report != nil {
		for _, w := range report.Warnings {
			logger.Warn("导入警告", zap.String("detail", w))
		}
	}
	if err != nil {
		logger.Fatal("要求关联导入失败", zap.Error(err))
	}
	logger.Info("要求关联导入完成",
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped),
		zap.Bool("dry_run", dryRun),
	)

	// 关联改动影响所有学期的要求列表，全量失效
	if !dryRun {
		var terms []model.Term
		if err := db.Find(&terms).Error; err != nil {
			logger.Warn("读取学期列表失败，缓存未失效", zap.Error(err))
			return
		}
		codes := make([]string, 0, len(terms))
		for i := range terms {
			codes = append(codes, terms[i].Code)
		}
		invalidateRequirementCaches(cfg, logger, codes)
	}
}

func invalidateRequirementCaches(cfg *config.Config, logger *zap.Logger, termCodes []string) {
	if !cfg.Redis.Enabled || len(termCodes) == 0 {
		return
	}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		return
	}
	defer rdb.Close()

	for _, code := range termCodes {
		if err := rdb.InvalidateRequirements(context.Background(), code); err != nil {
			logger.Warn("失效缓存失败", zap.String("term", code), zap.Error(err))
		}
	}
}

func loadMapping(path string) (ingest.Mapping, error) {
	if path == "" {
		return ingest.Mapping{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Mapping{}, err
	}

	var mapping ingest.Mapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return ingest.Mapping{}, err
	}
	return mapping, nil
}
