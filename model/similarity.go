package model

import "math"

// cosineSimilarity 计算两个向量的余弦相似度。
// 约定：任一向量为零向量时返回 0（余弦在零向量上无定义）。
func cosineSimilarity(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	var dot, normX, normY float64
	for i := range x {
		dot += x[i] * y[i]
		normX += x[i] * x[i]
		normY += y[i] * y[i]
	}
	if normX == 0 || normY == 0 {
		return 0
	}
	return dot / (math.Sqrt(normX) * math.Sqrt(normY))
}

// ItemSimilarityMatrix 计算交互矩阵商品列之间的余弦相似度矩阵。
//
// 不变式：
//   - 对称：sim[i][j] == sim[j][i]，只算上三角
//   - 对角线恒为 1（自相似，不依赖向量范数）
//   - 二值输入下取值落在 [0, 1]
func ItemSimilarityMatrix(m *InteractionMatrix) [][]float64 {
	n := len(m.ProductIDs)
	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		cols[j] = m.Column(j)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := cosineSimilarity(cols[i], cols[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}
